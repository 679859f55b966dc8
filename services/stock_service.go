package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketmuse_backend/models"
	"marketmuse_backend/services/finnhub"
	"marketmuse_backend/services/stockcache"
)

var (
	// ErrInvalidSymbol is returned for tickers outside [A-Z0-9.-]{1,10}
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrSymbolNotCached is returned when an operation needs a cached symbol
	ErrSymbolNotCached = errors.New("symbol not cached")
	// ErrFetchFailed wraps upstream failures of the initial fetch
	ErrFetchFailed = errors.New("initial fetch failed")
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// NormalizeSymbol trims and uppercases a ticker and validates its shape
func NormalizeSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolPattern.MatchString(symbol) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, raw)
	}
	return symbol, nil
}

// SeedResult contains the result of a seeding pass
type SeedResult struct {
	Fetched  []string `json:"fetched"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
	SeededAt string   `json:"seeded_at"`
}

// StockService manages the symbol universe of the cache
type StockService struct {
	db      *gorm.DB
	store   *stockcache.Store
	fetcher finnhub.Fetcher
	log     *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(db *gorm.DB, store *stockcache.Store, fetcher finnhub.Fetcher, log *zap.Logger) *StockService {
	return &StockService{db: db, store: store, fetcher: fetcher, log: log}
}

// List returns every cached record
func (s *StockService) List(ctx context.Context) ([]models.CacheRecord, error) {
	return s.store.List(ctx)
}

// ListSymbols returns the cached records among raw, ignoring unknown tickers
func (s *StockService) ListSymbols(ctx context.Context, raw []string) ([]models.CacheRecord, error) {
	symbols := make([]string, 0, len(raw))
	for _, r := range raw {
		symbol, err := NormalizeSymbol(r)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return s.store.ListBySymbols(ctx, symbols)
}

// Get returns the cached record for symbol
func (s *StockService) Get(ctx context.Context, raw string) (models.CacheRecord, error) {
	symbol, err := NormalizeSymbol(raw)
	if err != nil {
		return models.CacheRecord{}, err
	}
	rec, err := s.store.Get(ctx, symbol)
	if errors.Is(err, stockcache.ErrNotFound) {
		return rec, ErrSymbolNotCached
	}
	return rec, err
}

// AddSymbol fetches symbol once and stores it. Nothing is stored when the
// fetch fails, so the refresh rotation only ever sees known tickers.
func (s *StockService) AddSymbol(ctx context.Context, raw string) (models.CacheRecord, error) {
	symbol, err := NormalizeSymbol(raw)
	if err != nil {
		return models.CacheRecord{}, err
	}

	info, err := s.fetcher.FetchSymbolInfo(ctx, symbol)
	if err != nil {
		return models.CacheRecord{}, fmt.Errorf("%w for %s: %w", ErrFetchFailed, symbol, err)
	}
	if info.IsEmpty() {
		return models.CacheRecord{}, fmt.Errorf("%w for %s: %w", ErrFetchFailed, symbol, finnhub.ErrNoData)
	}
	if err := s.store.UpsertMerge(ctx, symbol, info); err != nil {
		return models.CacheRecord{}, err
	}

	s.log.Info("Symbol added to cache", zap.String("symbol", symbol))
	return s.store.Get(ctx, symbol)
}

// SeedMissing performs the initial fetch for every symbol not cached yet.
// Failures are logged and reported but never abort the pass.
func (s *StockService) SeedMissing(ctx context.Context, symbols []string) SeedResult {
	result := SeedResult{
		Fetched: []string{},
		Skipped: []string{},
		Failed:  []string{},
	}

	for _, raw := range symbols {
		if ctx.Err() != nil {
			break
		}
		symbol, err := NormalizeSymbol(raw)
		if err != nil {
			s.log.Warn("Skipping invalid seed symbol", zap.String("symbol", raw))
			result.Failed = append(result.Failed, raw)
			continue
		}

		exists, err := s.store.Exists(ctx, symbol)
		if err != nil {
			s.log.Error("Seed lookup failed", zap.String("symbol", symbol), zap.Error(err))
			result.Failed = append(result.Failed, symbol)
			continue
		}
		if exists {
			result.Skipped = append(result.Skipped, symbol)
			continue
		}

		if _, err := s.AddSymbol(ctx, symbol); err != nil {
			s.log.Warn("Initial fetch failed", zap.String("symbol", symbol), zap.Error(err))
			result.Failed = append(result.Failed, symbol)
			continue
		}
		result.Fetched = append(result.Fetched, symbol)
	}

	result.SeededAt = time.Now().UTC().Format(time.RFC3339)
	s.log.Info("Seed pass finished",
		zap.Int("fetched", len(result.Fetched)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
	)
	return result
}

// RemoveSymbol deletes the cache row and every watchlist entry for symbol
func (s *StockService) RemoveSymbol(ctx context.Context, raw string) error {
	symbol, err := NormalizeSymbol(raw)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("symbol = ?", symbol).Delete(&models.Watchlist{}).Error; err != nil {
			return fmt.Errorf("failed to delete watchlist rows: %w", err)
		}
		return stockcache.NewStore(tx).Delete(ctx, symbol)
	})
	if errors.Is(err, stockcache.ErrNotFound) {
		return ErrSymbolNotCached
	}
	if err != nil {
		return err
	}

	s.log.Info("Symbol removed from cache", zap.String("symbol", symbol))
	return nil
}
