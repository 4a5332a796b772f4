package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetDelta(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := DeltaRecord{
		ID:         "next-payday",
		Name:       "Next payday",
		ConfigJSON: `{"day":31,"week_day":["FR",-1]}`,
		CreatedAt:  time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveDelta(ctx, rec))

	got, err := store.GetDelta(ctx, "next-payday")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.ConfigJSON, got.ConfigJSON)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
}

func TestGetDelta_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetDelta(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveDelta_DuplicateIDFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := DeltaRecord{ID: "dup", Name: "first", ConfigJSON: `{}`, CreatedAt: time.Now()}
	require.NoError(t, store.SaveDelta(ctx, rec))

	rec.Name = "second"
	err := store.SaveDelta(ctx, rec)
	assert.Error(t, err, "primary key violation expected")
}

func TestListDeltas_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveDelta(ctx, DeltaRecord{
			ID:         id,
			Name:       id,
			ConfigJSON: `{}`,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	records, err := store.ListDeltas(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
}

func TestListDeltas_Empty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.ListDeltas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteDelta(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDelta(ctx, DeltaRecord{
		ID: "gone", Name: "gone", ConfigJSON: `{}`, CreatedAt: time.Now(),
	}))

	deleted, err := store.DeleteDelta(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := store.GetDelta(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = store.DeleteDelta(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}
