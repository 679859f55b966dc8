package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketmuse_backend/models"
	"marketmuse_backend/services/stockcache"
)

// ErrNotInWatchlist is returned when removing a symbol the user does not watch
var ErrNotInWatchlist = errors.New("symbol not in watchlist")

// WatchlistService manages per-user watched symbols
type WatchlistService struct {
	db    *gorm.DB
	store *stockcache.Store
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(db *gorm.DB, store *stockcache.Store) *WatchlistService {
	return &WatchlistService{db: db, store: store}
}

// List returns the cached records for the symbols userID watches
func (s *WatchlistService) List(ctx context.Context, userID string) ([]models.CacheRecord, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&models.Watchlist{}).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	return s.store.ListBySymbols(ctx, symbols)
}

// Add watches symbol for userID. added is false when it was already watched.
func (s *WatchlistService) Add(ctx context.Context, userID, raw string) (bool, error) {
	symbol, err := NormalizeSymbol(raw)
	if err != nil {
		return false, err
	}

	exists, err := s.store.Exists(ctx, symbol)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrSymbolNotCached
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Watchlist{UserID: userID, Symbol: symbol})
	if res.Error != nil {
		return false, fmt.Errorf("failed to add to watchlist: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Remove stops watching symbol for userID
func (s *WatchlistService) Remove(ctx context.Context, userID, raw string) error {
	symbol, err := NormalizeSymbol(raw)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&models.Watchlist{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotInWatchlist
	}
	return nil
}
