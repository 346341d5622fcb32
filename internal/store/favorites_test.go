package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteTwiceReturnsToOriginal(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, NewMemorySlot())

	entry := NumberFavorite(testNumber("N1", 10000))

	added := f.Toggle(ctx, entry)
	assert.True(t, added)
	assert.True(t, f.IsFavorite("N1"))
	assert.Equal(t, 1, f.Count())

	added = f.Toggle(ctx, entry)
	assert.False(t, added)
	assert.False(t, f.IsFavorite("N1"))
	assert.Equal(t, 0, f.Count())
}

func TestFavoritePackKeyedByPackIDOnly(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, NewMemorySlot())
	p := testPack()

	f.Toggle(ctx, PackFavorite(p))
	assert.True(t, f.IsFavorite("P1"))

	// toggling the same pack again removes it, whatever member subsets
	// exist elsewhere
	f.Toggle(ctx, PackFavorite(p))
	assert.False(t, f.IsFavorite("P1"))
}

func TestFavoritesPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()

	f := NewFavorites(ctx, slot)
	f.Toggle(ctx, NumberFavorite(testNumber("N1", 100)))
	f.Toggle(ctx, PackFavorite(testPack()))

	reloaded := NewFavorites(ctx, slot)
	require.Equal(t, 2, reloaded.Count())
	assert.Equal(t, f.Items(), reloaded.Items())
	assert.True(t, reloaded.IsFavorite("N1"))
	assert.True(t, reloaded.IsFavorite("P1"))
}

func TestFavoritesCorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, []byte("][")))

	f := NewFavorites(ctx, slot)
	assert.Equal(t, 0, f.Count())
	assert.True(t, f.Toggle(ctx, NumberFavorite(testNumber("N1", 100))))
}

func TestFavoritesNotifyListeners(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, NewMemorySlot())

	var counts []int
	unsubscribe := f.Subscribe(func() { counts = append(counts, f.Count()) })

	entry := NumberFavorite(testNumber("N1", 100))
	f.Toggle(ctx, entry)
	f.Toggle(ctx, entry)
	assert.Equal(t, []int{1, 0}, counts)

	unsubscribe()
	f.Toggle(ctx, entry)
	assert.Equal(t, []int{1, 0}, counts)
}
