package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/alexanderramin/notecards/internal/persistence"
	"github.com/alexanderramin/notecards/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingIndicator tracks visibility and the order of show/hide calls.
type recordingIndicator struct {
	mu      sync.Mutex
	visible bool
	log     []string
}

func (r *recordingIndicator) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
	r.log = append(r.log, "show")
}

func (r *recordingIndicator) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
	r.log = append(r.log, "hide")
}

func (r *recordingIndicator) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

func TestSync_LocalSnapshotLoadsAllNotes(t *testing.T) {
	ctx := context.Background()
	st, mirror := newTestStore(t)
	old1 := testutil.NewTestNote("Old 1", testutil.WithArchived())
	active := testutil.NewTestNote("Active")
	old2 := testutil.NewTestNote("Old 2", testutil.WithArchived())
	require.NoError(t, mirror.WriteSnapshot(ctx, []domain.Note{old1, active, old2}))

	svc := NewSyncService(persistence.NewLocalAdapter(mirror, nil), st)
	require.NoError(t, svc.Load(ctx, nil))

	// Non-archived first, then archived.
	assert.Equal(t, []domain.Note{active, old1, old2}, st.Snapshot())
	assert.Equal(t, SyncLoaded, svc.LastOutcome())
	assert.Equal(t, SyncIdle, svc.State())
}

func TestSync_IndicatorVisibleDuringBothFetches(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	st, _ := newTestStore(t)
	ind := &recordingIndicator{}
	svc := NewSyncService(adapter, st)

	var duringList, duringArchived bool
	var stateDuringList SyncState
	adapter.onCall("list", func() {
		duringList = ind.Visible()
		stateDuringList = svc.State()
	})
	adapter.onCall("list_archived", func() { duringArchived = ind.Visible() })

	require.NoError(t, svc.Load(ctx, ind))

	assert.True(t, duringList)
	assert.True(t, duringArchived)
	assert.Equal(t, SyncLoading, stateDuringList)
	assert.False(t, ind.Visible())
	assert.Equal(t, []string{"show", "hide"}, ind.log)
	assert.Equal(t, []string{"list", "list_archived"}, adapter.Calls())
	assert.False(t, svc.Loading())
}

func TestSync_FailureStillHidesIndicator(t *testing.T) {
	for _, op := range []string{"list", "list_archived"} {
		t.Run(op, func(t *testing.T) {
			ctx := context.Background()
			adapter := newFakeAdapter()
			adapter.failOn(op, &domain.RequestError{Status: 503, Reason: "Service Unavailable"})
			st, _ := newTestStore(t)
			before := testutil.NewTestNote("Existing")
			st.Reset(ctx, []domain.Note{before})
			ind := &recordingIndicator{}
			obs := &recordingUseCaseObserver{}
			svc := NewSyncService(adapter, st, obs)

			err := svc.Load(ctx, ind)

			var reqErr *domain.RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.False(t, ind.Visible())
			assert.Equal(t, SyncFailed, svc.LastOutcome())
			assert.Equal(t, SyncIdle, svc.State())
			assert.Equal(t, []domain.Note{before}, st.Snapshot())
			require.Len(t, obs.events, 1)
			assert.False(t, obs.events[0].Success)
		})
	}
}

func TestSync_StaleLoadIsDiscarded(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	first := testutil.NewTestNote("First")
	second := testutil.NewTestNote("Second")
	adapter.active = []domain.Note{first}
	st, _ := newTestStore(t)
	svc := NewSyncService(adapter, st)

	var innerErr error
	// While the outer load is fetching, the backend changes and a newer
	// load runs to completion.
	adapter.onCall("list_archived", func() {
		adapter.mu.Lock()
		adapter.active = []domain.Note{second}
		adapter.mu.Unlock()
		innerErr = svc.Load(ctx, nil)
	})

	err := svc.Load(ctx, nil)

	require.NoError(t, innerErr)
	assert.ErrorIs(t, err, domain.ErrStaleLoad)
	assert.Equal(t, []domain.Note{second}, st.Snapshot())
}

func TestSync_MutationDuringLoadIsKept(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	adapter.active = []domain.Note{testutil.NewTestNote("Listed")}
	st, mirror := newTestStore(t)
	notes := NewNoteService(adapter, st)
	obs := &recordingUseCaseObserver{}
	svc := NewSyncService(adapter, st, obs)

	// A create lands after the lists were read but before they are applied.
	var created domain.Note
	adapter.onCall("list_archived", func() {
		var err error
		created, err = notes.Create(ctx, "Fresh", "written mid-load")
		require.NoError(t, err)
	})

	err := svc.Load(ctx, nil)

	assert.ErrorIs(t, err, domain.ErrStaleLoad)
	assert.Equal(t, []domain.Note{created}, st.Snapshot())
	assert.Equal(t, []domain.Note{created}, mirrored(t, mirror))
	assert.Equal(t, SyncSuperseded, svc.LastOutcome())
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.NoError(t, obs.events[0].Err)
	assert.Equal(t, true, obs.events[0].Fields["superseded"])
}

func TestSync_SupersededLoadIsNotLoggedAsError(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	st, _ := newTestStore(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewSyncService(adapter, st, NewLogUseCaseObserver(logger))

	adapter.onCall("list_archived", func() {
		require.NoError(t, svc.Load(ctx, nil))
	})

	assert.ErrorIs(t, svc.Load(ctx, nil), domain.ErrStaleLoad)
	assert.NotContains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "superseded=true")
	assert.Equal(t, SyncSuperseded, svc.LastOutcome())
}

func TestSync_RemoteBackend(t *testing.T) {
	ctx := context.Background()
	api := testutil.NewFakeNotesAPI(t)
	active := testutil.NewTestNote("Active", testutil.WithID("n1"))
	archived := testutil.NewTestNote("Archived", testutil.WithID("n2"), testutil.WithArchived())
	api.Seed(archived, active)
	st, mirror := newTestStore(t)
	svc := NewSyncService(persistence.NewRemoteAdapter(api.URL(), 0, nil), st)

	require.NoError(t, svc.Load(ctx, nil))

	assert.Equal(t, []domain.Note{active, archived}, st.Snapshot())
	assert.Equal(t, []string{"GET /notes", "GET /notes/archived"}, api.Requests())
	assert.Len(t, mirrored(t, mirror), 2)
}

func TestSyncState_String(t *testing.T) {
	assert.Equal(t, "idle", SyncIdle.String())
	assert.Equal(t, "loading", SyncLoading.String())
	assert.Equal(t, "loaded", SyncLoaded.String())
	assert.Equal(t, "failed", SyncFailed.String())
	assert.Equal(t, "superseded", SyncSuperseded.String())
	assert.Equal(t, "unknown", SyncState(42).String())
}
