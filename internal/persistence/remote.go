package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
)

// RemoteAdapter implements Adapter against the notes REST API.
type RemoteAdapter struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	observer Observer
}

// NewRemoteAdapter creates a RemoteAdapter for the API rooted at baseURL.
// Each request is bounded by timeout.
func NewRemoteAdapter(baseURL string, timeout time.Duration, observer Observer) *RemoteAdapter {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &RemoteAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (a *RemoteAdapter) Name() string { return BackendRemote }

// apiNote is the note shape used by the API.
type apiNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	Archived  bool   `json:"archived"`
}

func (n apiNote) toDomain() domain.Note {
	return domain.Note{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		Archived:  n.Archived,
	}
}

// envelope wraps every API response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (a *RemoteAdapter) Create(ctx context.Context, title, body string) (domain.Note, error) {
	var created apiNote
	if err := a.call(ctx, "create", http.MethodPost, "/notes", createRequest{Title: title, Body: body}, &created); err != nil {
		return domain.Note{}, err
	}
	return created.toDomain(), nil
}

func (a *RemoteAdapter) List(ctx context.Context) ([]domain.Note, error) {
	return a.list(ctx, "list", "/notes")
}

func (a *RemoteAdapter) ListArchived(ctx context.Context) ([]domain.Note, error) {
	return a.list(ctx, "list_archived", "/notes/archived")
}

func (a *RemoteAdapter) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	return a.call(ctx, "delete", http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (a *RemoteAdapter) Archive(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	return a.call(ctx, "archive", http.MethodPost, "/notes/"+url.PathEscape(id)+"/archive", nil, nil)
}

func (a *RemoteAdapter) Unarchive(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	return a.call(ctx, "unarchive", http.MethodPost, "/notes/"+url.PathEscape(id)+"/unarchive", nil, nil)
}

func (a *RemoteAdapter) list(ctx context.Context, op, path string) ([]domain.Note, error) {
	var items []apiNote
	if err := a.call(ctx, op, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	notes := make([]domain.Note, 0, len(items))
	for _, item := range items {
		notes = append(notes, item.toDomain())
	}
	return notes, nil
}

// call performs one request, reports it to the observer and decodes the
// envelope's data into out when out is non-nil.
func (a *RemoteAdapter) call(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	err := a.doRequest(ctx, method, path, in, out)
	a.observer.OnCall(CallEvent{
		Adapter: BackendRemote,
		Op:      op,
		Latency: time.Since(start),
		Err:     err,
	})
	return err
}

func (a *RemoteAdapter) doRequest(ctx context.Context, method, path string, in, out any) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Op: method + " " + path, Err: fmt.Errorf("reading response: %w", err)}
	}

	var env envelope
	// Error bodies are not guaranteed to be JSON; the reason then falls
	// back to the status text.
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := env.Message
		if decodeErr != nil || reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return &domain.RequestError{Status: resp.StatusCode, Reason: reason}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("decoding response: missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
