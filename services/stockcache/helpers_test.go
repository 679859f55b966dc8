package stockcache

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketmuse_backend/config"
	"marketmuse_backend/models"
)

// openDB opens (or reopens) a migrated sqlite file under dir.
func openDB(t *testing.T, dir string) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(dir, "cache.db"), nil)
	require.NoError(t, err)
	require.NoError(t, models.MigrateStockModels(db))
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int64) *int64       { return &i }
