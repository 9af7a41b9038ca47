package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
)

// FakeNotesAPI is an in-process implementation of the notes REST API.
type FakeNotesAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	notes    []domain.Note
	seq      int
	failures map[string]fakeFailure
	requests []string
}

type fakeFailure struct {
	status  int
	message string
}

type fakeNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	Archived  bool   `json:"archived"`
}

// NewFakeNotesAPI starts a fake API server that is closed when the test ends.
func NewFakeNotesAPI(t *testing.T) *FakeNotesAPI {
	t.Helper()
	f := &FakeNotesAPI{failures: make(map[string]fakeFailure)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /notes", f.handleCreate)
	mux.HandleFunc("GET /notes", f.handleList(false))
	mux.HandleFunc("GET /notes/archived", f.handleList(true))
	mux.HandleFunc("DELETE /notes/{id}", f.handleDelete)
	mux.HandleFunc("POST /notes/{id}/archive", f.handleArchive(true))
	mux.HandleFunc("POST /notes/{id}/unarchive", f.handleArchive(false))

	f.server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the API base URL.
func (f *FakeNotesAPI) URL() string { return f.server.URL }

// Close stops the server early, e.g. to simulate an unreachable API.
func (f *FakeNotesAPI) Close() { f.server.Close() }

// Seed appends notes to the fake's state.
func (f *FakeNotesAPI) Seed(notes ...domain.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, notes...)
}

// FailWith makes every request matching "METHOD /path" answer with status.
func (f *FakeNotesAPI) FailWith(method, path string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = fakeFailure{status: status, message: message}
}

// Requests returns every "METHOD /path" received, in order.
func (f *FakeNotesAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Notes returns the fake's current state.
func (f *FakeNotesAPI) Notes() []domain.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Note(nil), f.notes...)
}

func (f *FakeNotesAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.requests = append(f.requests, route)
		failure, failing := f.failures[route]
		f.mu.Unlock()

		if failing {
			writeJSON(w, failure.status, map[string]any{"status": "fail", "message": failure.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeNotesAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "fail", "message": "invalid payload"})
		return
	}

	f.mu.Lock()
	f.seq++
	n := domain.Note{
		ID:        fmt.Sprintf("notes-%04d", f.seq),
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	f.notes = append(f.notes, n)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "message": "Note created", "data": toFakeNote(n)})
}

func (f *FakeNotesAPI) handleList(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		data := make([]fakeNote, 0, len(f.notes))
		for _, n := range f.notes {
			if n.Archived == archived {
				data = append(data, toFakeNote(n))
			}
		}
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Notes retrieved", "data": data})
	}
}

func (f *FakeNotesAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f.mu.Lock()
	idx := f.indexOf(id)
	if idx >= 0 {
		f.notes = append(f.notes[:idx], f.notes[idx+1:]...)
	}
	f.mu.Unlock()

	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "fail", "message": "Note is not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Note deleted"})
}

func (f *FakeNotesAPI) handleArchive(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.mu.Lock()
		idx := f.indexOf(id)
		if idx >= 0 {
			f.notes[idx].Archived = archived
		}
		f.mu.Unlock()

		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]any{"status": "fail", "message": "Note is not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Note updated"})
	}
}

// indexOf must be called with f.mu held.
func (f *FakeNotesAPI) indexOf(id string) int {
	for i, n := range f.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func toFakeNote(n domain.Note) fakeNote {
	return fakeNote{ID: n.ID, Title: n.Title, Body: n.Body, CreatedAt: n.CreatedAt, Archived: n.Archived}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
