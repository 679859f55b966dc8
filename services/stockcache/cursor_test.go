package stockcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmuse_backend/models"
)

func TestCursorStore_DefaultsToZero(t *testing.T) {
	t.Parallel()

	cursor := NewCursorStore(openDB(t, t.TempDir()))

	idx, err := cursor.LastIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx)
}

func TestCursorStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	ctx := context.Background()
	first := NewCursorStore(openDB(t, dir))
	require.NoError(t, first.SetLastIndex(ctx, 3))
	require.NoError(t, first.SetLastIndex(ctx, 7))

	// Act: a second handle on the same file simulates a restart
	second := NewCursorStore(openDB(t, dir))
	idx, err := second.LastIndex(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), idx)
}

func TestCursorStore_SingleRow(t *testing.T) {
	t.Parallel()

	db := openDB(t, t.TempDir())
	cursor := NewCursorStore(db)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, cursor.SetLastIndex(ctx, i))
	}

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCursorStore_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"abc", "-4", "1.5", ""} {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			// Arrange
			db := openDB(t, t.TempDir())
			require.NoError(t, db.Create(&models.Setting{Key: CursorKey, Value: raw}).Error)

			// Act
			idx, err := NewCursorStore(db).LastIndex(context.Background())

			// Assert
			assert.ErrorIs(t, err, ErrMalformedCursor)
			assert.Equal(t, int64(0), idx)
		})
	}
}
