package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMirror struct {
	mu     sync.Mutex
	writes [][]domain.Note
	err    error
}

func (m *fakeMirror) WriteSnapshot(_ context.Context, notes []domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, notes)
	return m.err
}

func (m *fakeMirror) last() []domain.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil
	}
	return m.writes[len(m.writes)-1]
}

func note(id, title string) domain.Note {
	return domain.Note{ID: id, Title: title, Body: "body " + title}
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)

	s.Add(ctx, note("1", "a"))
	s.Add(ctx, note("2", "b"))
	s.Add(ctx, note("3", "c"))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{snap[0].Title, snap[1].Title, snap[2].Title})
	assert.Len(t, m.writes, 3, "every mutation writes a full snapshot")
	assert.Equal(t, snap, m.last())
}

func TestStore_RemoveShrinksSnapshotByOne(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)
	s.Reset(ctx, []domain.Note{note("1", "a"), note("2", "b"), note("3", "c")})
	before := len(m.last())

	assert.True(t, s.Remove(ctx, "2"))

	assert.Len(t, m.last(), before-1)
	assert.Equal(t, []domain.Note{note("1", "a"), note("3", "c")}, s.Snapshot())
}

func TestStore_RemoveUnknownIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)
	s.Add(ctx, note("1", "a"))

	assert.False(t, s.Remove(ctx, "missing"))
	assert.Len(t, m.writes, 1)
	assert.Equal(t, 1, s.Len())
}

func TestStore_DuplicateIDsRemoveFirstMatch(t *testing.T) {
	ctx := context.Background()
	s := New(nil, nil)
	s.Add(ctx, note("dup", "first"))
	s.Add(ctx, note("dup", "second"))

	require.True(t, s.Remove(ctx, "dup"))

	got, ok := s.Get("dup")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

func TestStore_SetArchived(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)
	s.Add(ctx, note("1", "a"))

	require.True(t, s.SetArchived(ctx, "1", true))
	got, _ := s.Get("1")
	assert.True(t, got.Archived)
	assert.True(t, m.last()[0].Archived)

	require.True(t, s.SetArchived(ctx, "1", false))
	got, _ = s.Get("1")
	assert.False(t, got.Archived)

	assert.False(t, s.SetArchived(ctx, "missing", true))
}

func TestStore_ResetIfRejectsListReadBeforeMutation(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)
	s.Reset(ctx, []domain.Note{note("1", "a")})

	base := s.Version()
	s.Add(ctx, note("2", "b"))
	writes := len(m.writes)

	assert.False(t, s.ResetIf(ctx, base, []domain.Note{note("1", "a")}))
	assert.Len(t, s.Snapshot(), 2)
	assert.Len(t, m.writes, writes, "a rejected reset writes nothing")

	assert.True(t, s.ResetIf(ctx, s.Version(), []domain.Note{note("3", "c")}))
	assert.Equal(t, []domain.Note{note("3", "c")}, s.Snapshot())
}

func TestStore_VersionIgnoresMisses(t *testing.T) {
	ctx := context.Background()
	s := New(nil, nil)
	s.Add(ctx, note("1", "a"))
	v := s.Version()

	assert.False(t, s.Remove(ctx, "missing"))
	assert.False(t, s.SetArchived(ctx, "missing", true))
	assert.Equal(t, v, s.Version())

	assert.True(t, s.SetArchived(ctx, "1", true))
	assert.Greater(t, s.Version(), v)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New(nil, nil)
	s.Add(ctx, note("1", "a"))

	snap := s.Snapshot()
	snap[0].Title = "changed"

	got, _ := s.Get("1")
	assert.Equal(t, "a", got.Title)
}

func TestStore_MirrorFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{err: errors.New("disk full")}
	s := New(m, nil)

	s.Add(ctx, note("1", "a"))

	assert.Equal(t, 1, s.Len())
}

func TestStore_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	m := &fakeMirror{}
	s := New(m, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(ctx, note("x", "x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Len(t, m.writes, 50)
}
