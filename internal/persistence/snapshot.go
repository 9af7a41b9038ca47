package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/notecards/internal/domain"
)

// snapshotEntry is the JSON shape of one note in the local snapshot.
// title, content and archived are the original fields; id and createdAt
// were added later and are omitted when empty so old readers keep working.
type snapshotEntry struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
	Archived  bool   `json:"archived"`
}

// EncodeSnapshot serializes notes in order as a JSON array.
func EncodeSnapshot(notes []domain.Note) ([]byte, error) {
	entries := make([]snapshotEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, snapshotEntry{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Body,
			CreatedAt: n.CreatedAt,
			Archived:  n.Archived,
		})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot. Empty input yields no notes.
func DecodeSnapshot(data []byte) ([]domain.Note, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []snapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	notes := make([]domain.Note, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, domain.Note{
			ID:        e.ID,
			Title:     e.Title,
			Body:      e.Content,
			CreatedAt: e.CreatedAt,
			Archived:  e.Archived,
		})
	}
	return notes, nil
}

// SnapshotMirror stores the full note list under a single key.
type SnapshotMirror struct {
	kv  KeyValueStore
	key string
}

// NewSnapshotMirror creates a mirror writing to key in kv.
func NewSnapshotMirror(kv KeyValueStore, key string) *SnapshotMirror {
	return &SnapshotMirror{kv: kv, key: key}
}

// Key returns the storage key the snapshot lives under.
func (m *SnapshotMirror) Key() string { return m.key }

// WriteSnapshot replaces the stored snapshot with notes.
func (m *SnapshotMirror) WriteSnapshot(ctx context.Context, notes []domain.Note) error {
	data, err := EncodeSnapshot(notes)
	if err != nil {
		return err
	}
	return m.kv.SetItem(ctx, m.key, string(data))
}

// ReadSnapshot returns the stored notes, or none if the key is absent.
func (m *SnapshotMirror) ReadSnapshot(ctx context.Context) ([]domain.Note, error) {
	value, ok, err := m.kv.GetItem(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return DecodeSnapshot([]byte(value))
}
