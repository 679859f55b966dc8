package stockcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"marketmuse_backend/models"
)

var (
	// ErrNotFound is returned when a symbol has no cache row.
	ErrNotFound = errors.New("symbol not cached")
	// ErrMalformedCursor is returned when the stored cursor is not a non-negative integer.
	ErrMalformedCursor = errors.New("malformed refresh cursor")
)

// Option configures the stores in this package
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for last_updated and refreshed_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Store owns the stock_cache table
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a cache store on top of db
func NewStore(db *gorm.DB, opts ...Option) *Store {
	o := buildOptions(opts)
	return &Store{db: db, now: o.now}
}

// Symbols returns every cached symbol ordered by symbol
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&models.StockCache{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	return symbols, nil
}

// List returns all cached records ordered by symbol
func (s *Store) List(ctx context.Context) ([]models.CacheRecord, error) {
	var rows []models.StockCache
	if err := s.db.WithContext(ctx).Order("symbol ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock cache: %w", err)
	}
	out := make([]models.CacheRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

// ListBySymbols returns the cached records among symbols, ordered by symbol
func (s *Store) ListBySymbols(ctx context.Context, symbols []string) ([]models.CacheRecord, error) {
	out := make([]models.CacheRecord, 0, len(symbols))
	if len(symbols) == 0 {
		return out, nil
	}
	var rows []models.StockCache
	err := s.db.WithContext(ctx).
		Where("symbol IN ?", symbols).
		Order("symbol ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock cache: %w", err)
	}
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

// Get returns one cached record
func (s *Store) Get(ctx context.Context, symbol string) (models.CacheRecord, error) {
	row, found, err := findRow(s.db.WithContext(ctx), symbol)
	if err != nil {
		return models.CacheRecord{}, err
	}
	if !found {
		return models.CacheRecord{}, ErrNotFound
	}
	return toRecord(row), nil
}

// Exists reports whether symbol has a cache row
func (s *Store) Exists(ctx context.Context, symbol string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.StockCache{}).
		Where("symbol = ?", symbol).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", symbol, err)
	}
	return count > 0, nil
}

// UpsertMerge creates the row for symbol or merges info into the existing one.
// Fields missing from info never clear stored data.
func (s *Store) UpsertMerge(ctx context.Context, symbol string, info models.SymbolInfo) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, found, err := findRow(tx, symbol)
		if err != nil {
			return err
		}
		if !found {
			row = models.StockCache{Symbol: symbol}
		}
		mergeInto(&row, info, s.now().UTC())

		if !found {
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert %s: %w", symbol, err)
			}
			return nil
		}
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to update %s: %w", symbol, err)
		}
		return nil
	})
}

// Delete removes the cache row for symbol
func (s *Store) Delete(ctx context.Context, symbol string) error {
	res := s.db.WithContext(ctx).Where("symbol = ?", symbol).Delete(&models.StockCache{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", symbol, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func findRow(db *gorm.DB, symbol string) (models.StockCache, bool, error) {
	var row models.StockCache
	res := db.Where("symbol = ?", symbol).Limit(1).Find(&row)
	if res.Error != nil {
		return row, false, fmt.Errorf("failed to load %s: %w", symbol, res.Error)
	}
	return row, res.RowsAffected > 0, nil
}

// mergeInto applies the non-destructive merge rules. Zero is the provider's
// "no data" value for price and the fundamentals, but a real value for the
// daily change.
func mergeInto(row *models.StockCache, info models.SymbolInfo, now time.Time) {
	setString := func(dst **string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			s := strings.TrimSpace(*v)
			*dst = &s
		}
	}
	setNonZero := func(dst **float64, v *float64) {
		if v != nil && *v != 0 {
			f := *v
			*dst = &f
		}
	}
	setPresent := func(dst **float64, v *float64) {
		if v != nil {
			f := *v
			*dst = &f
		}
	}

	setString(&row.DisplayName, info.DisplayName)
	setString(&row.FullName, info.FullName)
	setString(&row.Exchange, info.Exchange)

	if info.Price != nil && *info.Price != 0 {
		row.Price = *info.Price
	}
	setPresent(&row.Change, info.Change)
	setPresent(&row.PercentChange, info.PercentChange)
	if info.Volume != nil && *info.Volume != 0 {
		v := *info.Volume
		row.Volume = &v
	}
	setNonZero(&row.PERatio, info.PERatio)
	setNonZero(&row.MarketCap, info.MarketCap)
	setNonZero(&row.High52W, info.High52W)
	setNonZero(&row.Low52W, info.Low52W)

	if history := EncodeHistory(info.History); history != "" {
		row.History = history
	}
	row.LastUpdated = now
}

func toRecord(row models.StockCache) models.CacheRecord {
	return models.CacheRecord{
		Symbol:        row.Symbol,
		DisplayName:   row.DisplayName,
		FullName:      row.FullName,
		Exchange:      row.Exchange,
		Price:         row.Price,
		Change:        row.Change,
		PercentChange: row.PercentChange,
		Volume:        row.Volume,
		PERatio:       row.PERatio,
		MarketCap:     row.MarketCap,
		High52W:       row.High52W,
		Low52W:        row.Low52W,
		History:       DecodeHistory(row.History),
		LastUpdated:   row.LastUpdated,
	}
}
