package persistence

import (
	"context"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/google/uuid"
)

// LocalAdapter serves notes from the local snapshot. Writes are no-ops:
// the store's mirror write is what persists a local change.
type LocalAdapter struct {
	mirror   *SnapshotMirror
	observer Observer
	now      func() time.Time
}

// NewLocalAdapter creates a LocalAdapter reading from mirror.
func NewLocalAdapter(mirror *SnapshotMirror, observer Observer) *LocalAdapter {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &LocalAdapter{
		mirror:   mirror,
		observer: observer,
		now:      time.Now,
	}
}

func (a *LocalAdapter) Name() string { return BackendLocal }

func (a *LocalAdapter) Create(ctx context.Context, title, body string) (domain.Note, error) {
	note := domain.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		CreatedAt: a.now().UTC().Format(domain.TimestampLayout),
	}
	a.report("create", time.Now(), nil)
	return note, nil
}

func (a *LocalAdapter) List(ctx context.Context) ([]domain.Note, error) {
	return a.read(ctx, "list", false)
}

func (a *LocalAdapter) ListArchived(ctx context.Context) ([]domain.Note, error) {
	return a.read(ctx, "list_archived", true)
}

func (a *LocalAdapter) Delete(ctx context.Context, id string) error {
	a.report("delete", time.Now(), nil)
	return nil
}

func (a *LocalAdapter) Archive(ctx context.Context, id string) error {
	a.report("archive", time.Now(), nil)
	return nil
}

func (a *LocalAdapter) Unarchive(ctx context.Context, id string) error {
	a.report("unarchive", time.Now(), nil)
	return nil
}

// read returns the snapshot notes whose archived flag equals archived.
// Entries written before ids were stored get a fresh id so the store can
// address them; it is persisted by the next snapshot write.
func (a *LocalAdapter) read(ctx context.Context, op string, archived bool) ([]domain.Note, error) {
	start := time.Now()
	all, err := a.mirror.ReadSnapshot(ctx)
	if err != nil {
		a.report(op, start, err)
		return nil, err
	}
	var notes []domain.Note
	for _, n := range all {
		if n.Archived != archived {
			continue
		}
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		notes = append(notes, n)
	}
	a.report(op, start, nil)
	return notes, nil
}

func (a *LocalAdapter) report(op string, start time.Time, err error) {
	a.observer.OnCall(CallEvent{
		Adapter: BackendLocal,
		Op:      op,
		Latency: time.Since(start),
		Err:     err,
	})
}
