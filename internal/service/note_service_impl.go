package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/alexanderramin/notecards/internal/persistence"
	"github.com/alexanderramin/notecards/internal/store"
)

type noteService struct {
	adapter  persistence.Adapter
	store    *store.Store
	observer UseCaseObserver
}

func NewNoteService(adapter persistence.Adapter, st *store.Store, observers ...UseCaseObserver) NoteService {
	return &noteService{
		adapter:  adapter,
		store:    st,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *noteService) Backend() string { return s.adapter.Name() }

func (s *noteService) Notes() []domain.Note { return s.store.Snapshot() }

func (s *noteService) Create(ctx context.Context, title, body string) (note domain.Note, err error) {
	defer s.observe(ctx, "create-note", time.Now(), &err, map[string]any{"title": title})

	candidate := domain.Note{Title: title, Body: body}
	if err = candidate.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err = s.adapter.Create(ctx, title, body)
	if err != nil {
		return domain.Note{}, fmt.Errorf("creating note: %w", err)
	}
	s.store.Add(ctx, note)
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete-note", time.Now(), &err, map[string]any{"id": id})

	if _, ok := s.store.Get(id); !ok {
		return fmt.Errorf("deleting note %q: %w", id, domain.ErrNoteNotFound)
	}
	if err = s.adapter.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting note %q: %w", id, err)
	}
	s.store.Remove(ctx, id)
	return nil
}

func (s *noteService) SetArchived(ctx context.Context, id string, archived bool) (err error) {
	defer s.observe(ctx, "set-archived", time.Now(), &err, map[string]any{"id": id, "archived": archived})

	if _, ok := s.store.Get(id); !ok {
		return fmt.Errorf("archiving note %q: %w", id, domain.ErrNoteNotFound)
	}
	return s.setArchived(ctx, id, archived)
}

func (s *noteService) ToggleArchive(ctx context.Context, id string) (note domain.Note, err error) {
	defer s.observe(ctx, "toggle-archive", time.Now(), &err, map[string]any{"id": id})

	current, ok := s.store.Get(id)
	if !ok {
		return domain.Note{}, fmt.Errorf("toggling note %q: %w", id, domain.ErrNoteNotFound)
	}
	if err = s.setArchived(ctx, id, !current.Archived); err != nil {
		return domain.Note{}, err
	}
	current.Archived = !current.Archived
	return current, nil
}

func (s *noteService) setArchived(ctx context.Context, id string, archived bool) error {
	var err error
	if archived {
		err = s.adapter.Archive(ctx, id)
	} else {
		err = s.adapter.Unarchive(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("archiving note %q: %w", id, err)
	}
	s.store.SetArchived(ctx, id, archived)
	return nil
}

func (s *noteService) observe(ctx context.Context, name string, startedAt time.Time, errp *error, fields map[string]any) {
	fields["backend"] = s.adapter.Name()
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *errp == nil,
		Err:       *errp,
		Fields:    fields,
	})
}
