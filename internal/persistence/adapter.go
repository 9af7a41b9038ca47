// Package persistence implements the note backends: a local adapter that
// reads the snapshot kept in the SQLite key/value store, and a remote adapter
// that talks to the notes REST API. Both satisfy Adapter.
package persistence

import (
	"context"

	"github.com/alexanderramin/notecards/internal/domain"
)

// Adapter is the backend the note service and sync driver talk to.
type Adapter interface {
	// Create persists a new note and returns it with its backend id.
	Create(ctx context.Context, title, body string) (domain.Note, error)

	// List returns the non-archived notes.
	List(ctx context.Context) ([]domain.Note, error)

	// ListArchived returns the archived notes.
	ListArchived(ctx context.Context) ([]domain.Note, error)

	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error

	// Name identifies the backend in logs ("local" or "remote").
	Name() string
}

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)
