package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StockCache is the persisted row for one cached ticker symbol.
// History is stored as a comma separated list of prices, most recent last.
type StockCache struct {
	Symbol        string    `gorm:"primaryKey;size:16" json:"symbol"`
	DisplayName   *string   `json:"display_name"`
	FullName      *string   `json:"full_name"`
	Exchange      *string   `json:"exchange"`
	Price         float64   `gorm:"not null;default:0" json:"price"`
	Change        *float64  `json:"change"`
	PercentChange *float64  `json:"percent_change"`
	Volume        *int64    `json:"volume"`
	PERatio       *float64  `gorm:"column:pe_ratio" json:"pe_ratio"`
	MarketCap     *float64  `json:"market_cap"`
	High52W       *float64  `gorm:"column:high_52w" json:"high_52w"`
	Low52W        *float64  `gorm:"column:low_52w" json:"low_52w"`
	History       string    `gorm:"type:text" json:"-"`
	LastUpdated   time.Time `json:"last_updated"`
}

// TableName keeps the table name used by the existing deployments.
func (StockCache) TableName() string {
	return "stock_cache"
}

// CacheRecord is the read model served to API clients.
type CacheRecord struct {
	Symbol        string    `json:"symbol"`
	DisplayName   *string   `json:"display_name"`
	FullName      *string   `json:"full_name"`
	Exchange      *string   `json:"exchange"`
	Price         float64   `json:"price"`
	Change        *float64  `json:"change"`
	PercentChange *float64  `json:"percent_change"`
	Volume        *int64    `json:"volume"`
	PERatio       *float64  `json:"pe_ratio"`
	MarketCap     *float64  `json:"market_cap"`
	High52W       *float64  `json:"high_52w"`
	Low52W        *float64  `json:"low_52w"`
	History       []float64 `json:"history"`
	LastUpdated   time.Time `json:"last_updated"`
}

// SymbolInfo is one fetch result from the market data provider.
// Every field is optional: nil means the provider did not return it,
// which is different from a present zero.
type SymbolInfo struct {
	DisplayName   *string
	FullName      *string
	Exchange      *string
	Price         *float64
	Change        *float64
	PercentChange *float64
	Volume        *int64
	PERatio       *float64
	MarketCap     *float64
	High52W       *float64
	Low52W        *float64
	History       []float64
}

// IsEmpty reports whether the fetch carried no usable field at all.
func (s SymbolInfo) IsEmpty() bool {
	for _, v := range []*string{s.DisplayName, s.FullName, s.Exchange} {
		if v != nil && strings.TrimSpace(*v) != "" {
			return false
		}
	}
	for _, v := range []*float64{s.Price, s.PERatio, s.MarketCap, s.High52W, s.Low52W} {
		if v != nil && *v != 0 {
			return false
		}
	}
	if s.Change != nil || s.PercentChange != nil {
		return false
	}
	if s.Volume != nil && *s.Volume != 0 {
		return false
	}
	return len(s.History) == 0
}

// Setting is a key/value row used for small pieces of durable state,
// such as the refresh cursor.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// RefreshLog records one refresh attempt made by the scheduler.
type RefreshLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol      string    `gorm:"not null;size:16" json:"symbol"`
	RefreshedAt time.Time `gorm:"index" json:"refreshed_at"`
	Status      string    `json:"status"`
}

// TableName keeps the singular table name of the audit log.
func (RefreshLog) TableName() string {
	return "refresh_log"
}

// MigrateStockModels runs database migrations for the cache, cursor and audit tables
func MigrateStockModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&StockCache{},
		&Setting{},
		&RefreshLog{},
	)
}
