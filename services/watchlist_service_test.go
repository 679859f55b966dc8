package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmuse_backend/services/stockcache"
)

func TestWatchlistService_AddListRemove(t *testing.T) {
	t.Parallel()

	// Arrange
	db := openDB(t)
	store := stockcache.NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.UpsertMerge(ctx, "AAPL", priced(190)))
	require.NoError(t, store.UpsertMerge(ctx, "NVDA", priced(900)))
	svc := NewWatchlistService(db, store)

	// Act
	added, err := svc.Add(ctx, "u1", "nvda")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = svc.Add(ctx, "u1", "NVDA")
	require.NoError(t, err)
	assert.False(t, added)
	_, err = svc.Add(ctx, "u1", "AAPL")
	require.NoError(t, err)

	// Assert
	records, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "NVDA", records[1].Symbol)

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.Remove(ctx, "u1", "AAPL"))
	assert.ErrorIs(t, svc.Remove(ctx, "u1", "AAPL"), ErrNotInWatchlist)
}

func TestWatchlistService_AddUncachedSymbol(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	svc := NewWatchlistService(db, stockcache.NewStore(db))

	_, err := svc.Add(context.Background(), "u1", "AAPL")
	assert.ErrorIs(t, err, ErrSymbolNotCached)
}
