package testutil

import (
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/google/uuid"
)

// Note options
type NoteOption func(*domain.Note)

func WithID(id string) NoteOption {
	return func(n *domain.Note) {
		n.ID = id
	}
}

func WithBody(body string) NoteOption {
	return func(n *domain.Note) {
		n.Body = body
	}
}

func WithArchived() NoteOption {
	return func(n *domain.Note) {
		n.Archived = true
	}
}

func WithCreatedAt(t time.Time) NoteOption {
	return func(n *domain.Note) {
		n.CreatedAt = t.UTC().Format(domain.TimestampLayout)
	}
}

// WithoutID clears the id, mimicking a snapshot entry written before ids
// were stored.
func WithoutID() NoteOption {
	return func(n *domain.Note) {
		n.ID = ""
	}
}

func NewTestNote(title string, opts ...NoteOption) domain.Note {
	n := domain.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      "Body of " + title,
		CreatedAt: time.Now().UTC().Format(domain.TimestampLayout),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}
