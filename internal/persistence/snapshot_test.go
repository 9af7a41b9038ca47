package persistence_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/alexanderramin/notecards/internal/persistence"
	"github.com/alexanderramin/notecards/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_EncodeKeepsOrderAndFields(t *testing.T) {
	notes := []domain.Note{
		{ID: "a", Title: "First", Body: "one", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "b", Title: "Second", Body: "two", Archived: true},
	}

	data, err := persistence.EncodeSnapshot(notes)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"a","title":"First","content":"one","createdAt":"2024-01-01T00:00:00Z","archived":false},
		{"id":"b","title":"Second","content":"two","archived":true}
	]`, string(data))

	decoded, err := persistence.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, notes, decoded)
}

func TestSnapshot_EncodeEmptyIsArray(t *testing.T) {
	data, err := persistence.EncodeSnapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSnapshot_DecodeLegacyEntries(t *testing.T) {
	legacy := `[{"title":"Old","content":"from before ids","archived":true}]`

	notes, err := persistence.DecodeSnapshot([]byte(legacy))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Empty(t, notes[0].ID)
	assert.Empty(t, notes[0].CreatedAt)
	assert.Equal(t, "from before ids", notes[0].Body)
	assert.True(t, notes[0].Archived)
}

func TestSnapshot_DecodeRejectsGarbage(t *testing.T) {
	_, err := persistence.DecodeSnapshot([]byte("{not json"))
	assert.ErrorContains(t, err, "decoding snapshot")
}

func TestSnapshotMirror_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewSQLiteKV(testutil.NewTestDB(t))
	mirror := persistence.NewSnapshotMirror(kv, "NOTES_APP_DATA")

	notes, err := mirror.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	want := []domain.Note{testutil.NewTestNote("Kept"), testutil.NewTestNote("Archived", testutil.WithArchived())}
	require.NoError(t, mirror.WriteSnapshot(ctx, want))

	got, err := mirror.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
