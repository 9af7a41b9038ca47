// Package store holds the in-memory note list that every view renders from.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alexanderramin/notecards/internal/domain"
)

// Mirror receives a full copy of the notes after every mutation.
type Mirror interface {
	WriteSnapshot(ctx context.Context, notes []domain.Note) error
}

// Store is an ordered, insertion-ordered list of notes. It does not enforce
// uniqueness of ids, titles or bodies.
//
// Every mutation rewrites the whole snapshot to the mirror, which is O(n)
// per operation. A failed mirror write is logged; the in-memory change
// stands.
type Store struct {
	mu    sync.RWMutex
	notes []domain.Note
	// version counts mutations. A reader that builds a replacement list
	// from outside data passes the version it started from to ResetIf.
	version uint64

	// writeMu orders mirror writes. It is acquired before mu is released
	// so snapshots reach the mirror in mutation order.
	writeMu sync.Mutex
	mirror  Mirror
	logger  *slog.Logger
}

// New creates an empty Store. mirror may be nil for a store without a local
// copy.
func New(mirror Mirror, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{mirror: mirror, logger: logger}
}

// Add appends note.
func (s *Store) Add(ctx context.Context, note domain.Note) {
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.commitLocked(ctx)
}

// Remove deletes the first note with id and reports whether one was found.
// Nothing is written when no note matches.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.commitLocked(ctx)
	return true
}

// SetArchived sets the archived flag of the first note with id.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes[idx].Archived = archived
	s.commitLocked(ctx)
	return true
}

// Reset replaces the whole list with notes in one mutation.
func (s *Store) Reset(ctx context.Context, notes []domain.Note) {
	s.mu.Lock()
	s.notes = append([]domain.Note(nil), notes...)
	s.commitLocked(ctx)
}

// ResetIf replaces the list only if no mutation happened since version was
// read. It reports whether the replacement was applied.
func (s *Store) ResetIf(ctx context.Context, version uint64, notes []domain.Note) bool {
	s.mu.Lock()
	if s.version != version {
		s.mu.Unlock()
		return false
	}
	s.notes = append([]domain.Note(nil), notes...)
	s.commitLocked(ctx)
	return true
}

// Version returns the current mutation count.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns a copy of the first note with id.
func (s *Store) Get(id string) (domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Note{}, false
	}
	return s.notes[idx], true
}

// Snapshot returns a copy of the notes in insertion order.
func (s *Store) Snapshot() []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Store) indexLocked(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked() []domain.Note {
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// commitLocked must be called with mu held; it releases mu and writes the
// snapshot taken under it.
func (s *Store) commitLocked(ctx context.Context) {
	s.version++
	snap := s.copyLocked()
	s.writeMu.Lock()
	s.mu.Unlock()
	defer s.writeMu.Unlock()

	if s.mirror == nil {
		return
	}
	if err := s.mirror.WriteSnapshot(ctx, snap); err != nil {
		s.logger.ErrorContext(ctx, "mirror_write_failed", "notes", len(snap), "error", err.Error())
	}
}
