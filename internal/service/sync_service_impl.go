package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/alexanderramin/notecards/internal/persistence"
	"github.com/alexanderramin/notecards/internal/store"
)

// SyncState is the load cycle state: Idle → Loading → (Loaded | Failed) → Idle.
// A load whose results were dropped because the store moved on settles as
// Superseded.
type SyncState int32

const (
	SyncIdle SyncState = iota
	SyncLoading
	SyncLoaded
	SyncFailed
	SyncSuperseded
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncLoading:
		return "loading"
	case SyncLoaded:
		return "loaded"
	case SyncFailed:
		return "failed"
	case SyncSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

type syncService struct {
	adapter  persistence.Adapter
	store    *store.Store
	observer UseCaseObserver

	// generation is bumped by every Load; a load applies its results only
	// if no newer load started meanwhile.
	generation atomic.Uint64
	inFlight   atomic.Int32
	state      atomic.Int32
	outcome    atomic.Int32
}

func NewSyncService(adapter persistence.Adapter, st *store.Store, observers ...UseCaseObserver) SyncService {
	return &syncService{
		adapter:  adapter,
		store:    st,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *syncService) Load(ctx context.Context, ind Indicator) (err error) {
	if ind == nil {
		ind = noopIndicator{}
	}
	gen := s.generation.Add(1)
	startedAt := time.Now()
	fields := map[string]any{"backend": s.adapter.Name(), "generation": gen}

	s.inFlight.Add(1)
	s.state.Store(int32(SyncLoading))
	ind.Show()
	defer func() {
		ind.Hide()
		event := UseCaseEvent{
			Name:      "load-notes",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		}
		switch {
		case errors.Is(err, domain.ErrStaleLoad):
			s.outcome.Store(int32(SyncSuperseded))
			event.Success = true
			event.Err = nil
			fields["superseded"] = true
		case err != nil:
			s.outcome.Store(int32(SyncFailed))
		default:
			s.outcome.Store(int32(SyncLoaded))
		}
		if s.inFlight.Add(-1) == 0 {
			s.state.Store(int32(SyncIdle))
		}
		s.observer.ObserveUseCase(ctx, event)
	}()

	// A mutation landing after this point makes the fetched lists stale.
	base := s.store.Version()

	active, err := s.adapter.List(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	archived, err := s.adapter.ListArchived(ctx)
	if err != nil {
		return fmt.Errorf("loading archived notes: %w", err)
	}

	if s.generation.Load() != gen {
		return domain.ErrStaleLoad
	}

	notes := make([]domain.Note, 0, len(active)+len(archived))
	notes = append(notes, active...)
	notes = append(notes, archived...)
	if !s.store.ResetIf(ctx, base, notes) {
		return domain.ErrStaleLoad
	}
	fields["notes"] = len(notes)
	return nil
}

func (s *syncService) Loading() bool {
	return s.inFlight.Load() > 0
}

func (s *syncService) State() SyncState {
	return SyncState(s.state.Load())
}

func (s *syncService) LastOutcome() SyncState {
	return SyncState(s.outcome.Load())
}

type noopIndicator struct{}

func (noopIndicator) Show() {}
func (noopIndicator) Hide() {}
