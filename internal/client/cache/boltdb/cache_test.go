package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotops/parkview/pkg/api"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := New(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cache.Close())
	})
	return cache
}

func TestCache_EmptyLoad(t *testing.T) {
	cache := newTestCache(t)

	_, _, err := cache.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	snapshot := &api.StatusResponse{
		Nodes: []api.Node{
			{ID: 0, X: 1, Y: 0, Type: "road", IsEntry: true},
			{ID: 1, X: 1, Y: 1, Type: "slot", SlotType: "2w", Filled: true, VehicleID: "m-1", VehicleType: "2w"},
		},
		Edges: []api.Edge{{Source: 0, Target: 1}},
		Stats: map[string]api.CategoryStats{"2w": {Total: 1, Available: 0}},
	}
	fetchedAt := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, cache.SaveSnapshot(ctx, snapshot, fetchedAt))

	loaded, loadedAt, err := cache.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
	assert.True(t, fetchedAt.Equal(loadedAt))
}

func TestCache_ReplacedWholesale(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := &api.StatusResponse{Nodes: []api.Node{{ID: 0, Type: "road"}}}
	second := &api.StatusResponse{Nodes: []api.Node{{ID: 5, Type: "slot", SlotType: "4w"}}}

	require.NoError(t, cache.SaveSnapshot(ctx, first, time.Now()))
	require.NoError(t, cache.SaveSnapshot(ctx, second, time.Now()))

	loaded, _, err := cache.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, 5, loaded.Nodes[0].ID)
}
