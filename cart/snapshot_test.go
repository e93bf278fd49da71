package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamnura/mini-ecommerce-api/models"
)

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	store, err := NewFileSnapshotStore(t.TempDir())
	require.NoError(t, err)

	snap := &models.CartSnapshot{Lines: []models.CartLine{
		{ProductID: 1, Title: "Phone", Price: 549, Thumbnail: "t1", Quantity: 2},
		{ProductID: 2, Title: "Soap", Price: 4.5, Thumbnail: "t2", Quantity: 1},
	}}
	require.NoError(t, store.Save("cart-1", snap))

	got, err := store.Load("cart-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Lines, got.Lines)
}

func TestFileSnapshotStoreMissing(t *testing.T) {
	store, err := NewFileSnapshotStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Load("cart-404")
	require.NoError(t, err)
	assert.Nil(t, got, "a missing snapshot is not an error")
}

func TestFileSnapshotStoreRewritesWhole(t *testing.T) {
	store, err := NewFileSnapshotStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("cart-1", &models.CartSnapshot{Lines: []models.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}}))
	require.NoError(t, store.Save("cart-1", &models.CartSnapshot{Lines: []models.CartLine{
		{ProductID: 3, Quantity: 5},
	}}))

	got, err := store.Load("cart-1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1, "save replaces the snapshot, it never patches it")
	assert.Equal(t, 3, got.Lines[0].ProductID)
}

// Restart simulation: a store persisted through mutations and a fresh store
// hydrated from the same directory end up identical.
func TestStoreRestartRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snapshots, err := NewFileSnapshotStore(dir)
	require.NoError(t, err)

	first := newReadyStore(t, snapshots)
	first.Add(line(1, "Phone", 549))
	first.Add(line(1, "Phone", 549))
	first.Add(line(2, "Soap", 4.5))
	wantLines := first.Lines()
	wantSummary := first.Summary()

	reopened, err := NewFileSnapshotStore(dir)
	require.NoError(t, err)
	second := NewStore("cart-test", reopened)
	require.Eventually(t, second.Hydrated, time.Second, time.Millisecond)

	assert.Equal(t, wantLines, second.Lines())
	assert.Equal(t, wantSummary, second.Summary(), "reloaded totals equal the pre-persist totals")
}

func TestRegistryReturnsSameStore(t *testing.T) {
	registry := NewRegistry(newFakeSnapshotStore())

	a := registry.For(7)
	b := registry.For(7)
	other := registry.For(8)

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)

	a.Add(line(1, "Phone", 549))
	assert.True(t, b.Contains(1))
	assert.False(t, other.Contains(1), "carts are isolated per user")
}
