package service

import (
	"context"

	"github.com/alexanderramin/notecards/internal/domain"
)

// NoteService runs the note use cases: call the backend first, then mutate
// the store only when the backend succeeded.
type NoteService interface {
	// Create validates title and body before any backend call.
	Create(ctx context.Context, title, body string) (domain.Note, error)
	Delete(ctx context.Context, id string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	// ToggleArchive flips the archived flag and returns the updated note.
	ToggleArchive(ctx context.Context, id string) (domain.Note, error)
	// Notes returns the current store snapshot in arrival order.
	Notes() []domain.Note
	// Backend names the active adapter.
	Backend() string
}

// SyncService pulls the backend's notes into the store.
type SyncService interface {
	// Load fetches non-archived then archived notes and replaces the store
	// contents. ind is shown for the whole span and hidden on every exit
	// path; nil means no indicator.
	Load(ctx context.Context, ind Indicator) error
	// Loading reports whether any load is in flight.
	Loading() bool
	State() SyncState
	// LastOutcome is SyncLoaded, SyncFailed or SyncSuperseded after the first
	// load settles.
	LastOutcome() SyncState
}

// Indicator is the loading indicator driven by SyncService.Load.
type Indicator interface {
	Show()
	Hide()
}
