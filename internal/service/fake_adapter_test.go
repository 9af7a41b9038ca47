package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/notecards/internal/domain"
)

// fakeAdapter is a scriptable persistence.Adapter that records every call.
type fakeAdapter struct {
	mu       sync.Mutex
	calls    []string
	active   []domain.Note
	archived []domain.Note
	errs     map[string]error
	hooks    map[string]func()
	seq      int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{errs: make(map[string]error), hooks: make(map[string]func())}
}

func (f *fakeAdapter) Name() string { return "fake" }

// failOn makes op return err.
func (f *fakeAdapter) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

// onCall runs hook once, the first time op is called.
func (f *fakeAdapter) onCall(op string, hook func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[op] = hook
}

func (f *fakeAdapter) record(op string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	hook := f.hooks[op]
	delete(f.hooks, op)
	err := f.errs[op]
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return err
}

func (f *fakeAdapter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAdapter) Create(ctx context.Context, title, body string) (domain.Note, error) {
	if err := f.record("create"); err != nil {
		return domain.Note{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return domain.Note{ID: fmt.Sprintf("fake-%d", f.seq), Title: title, Body: body, CreatedAt: "2024-05-01T08:00:00Z"}, nil
}

func (f *fakeAdapter) List(ctx context.Context) ([]domain.Note, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Note(nil), f.active...), nil
}

func (f *fakeAdapter) ListArchived(ctx context.Context) ([]domain.Note, error) {
	if err := f.record("list_archived"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Note(nil), f.archived...), nil
}

func (f *fakeAdapter) Delete(ctx context.Context, id string) error {
	return f.record("delete")
}

func (f *fakeAdapter) Archive(ctx context.Context, id string) error {
	return f.record("archive")
}

func (f *fakeAdapter) Unarchive(ctx context.Context, id string) error {
	return f.record("unarchive")
}
