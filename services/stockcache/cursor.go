package stockcache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketmuse_backend/models"
)

// CursorKey is the settings key holding the next round-robin position.
const CursorKey = "last_index"

// CursorStore persists the refresh cursor in the settings table
type CursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a cursor store on top of db
func NewCursorStore(db *gorm.DB) *CursorStore {
	return &CursorStore{db: db}
}

// LastIndex returns the stored cursor, or 0 when it was never written.
func (c *CursorStore) LastIndex(ctx context.Context) (int64, error) {
	var setting models.Setting
	res := c.db.WithContext(ctx).
		Where(&models.Setting{Key: CursorKey}).
		Limit(1).
		Find(&setting)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to read cursor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}

	v, err := strconv.ParseInt(strings.TrimSpace(setting.Value), 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCursor, setting.Value)
	}
	return v, nil
}

// SetLastIndex stores the cursor in a single upsert
func (c *CursorStore) SetLastIndex(ctx context.Context, index int64) error {
	setting := models.Setting{Key: CursorKey, Value: strconv.FormatInt(index, 10)}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write cursor: %w", err)
	}
	return nil
}
