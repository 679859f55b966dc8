package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketmuse_backend/config"
	"marketmuse_backend/models"
	"marketmuse_backend/services/finnhub"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "services.db"), nil)
	require.NoError(t, err)
	require.NoError(t, models.MigrateStockModels(db))
	require.NoError(t, models.MigrateUserModels(db))
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// fakeFetcher answers from a fixed table and records every call.
type fakeFetcher struct {
	mu    sync.Mutex
	info  map[string]models.SymbolInfo
	errs  map[string]error
	calls []string
}

var _ finnhub.Fetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) FetchSymbolInfo(_ context.Context, symbol string) (models.SymbolInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbol)
	if err, ok := f.errs[symbol]; ok {
		return models.SymbolInfo{}, err
	}
	if info, ok := f.info[symbol]; ok {
		return info, nil
	}
	return models.SymbolInfo{}, finnhub.ErrNoData
}

func priced(p float64) models.SymbolInfo {
	return models.SymbolInfo{Price: &p, History: []float64{p}}
}

func strPtr(s string) *string { return &s }
