package stockcache

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"marketmuse_backend/models"
)

// StatusSuccess is the audit status of a refresh that merged fresh data.
const StatusSuccess = "success"

// ErrorStatus formats the audit status of a failed refresh
func ErrorStatus(err error) string {
	return "error: " + err.Error()
}

// RefreshLog is the bounded audit log of refresh attempts
type RefreshLog struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRefreshLog creates an audit log on top of db
func NewRefreshLog(db *gorm.DB, opts ...Option) *RefreshLog {
	o := buildOptions(opts)
	return &RefreshLog{db: db, now: o.now}
}

// Append records one attempt stamped with the current UTC time
func (l *RefreshLog) Append(ctx context.Context, symbol, status string) error {
	entry := models.RefreshLog{
		Symbol:      symbol,
		RefreshedAt: l.now().UTC(),
		Status:      status,
	}
	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append refresh log: %w", err)
	}
	return nil
}

// TrimToLatest deletes every entry except the k newest.
func (l *RefreshLog) TrimToLatest(ctx context.Context, k int) error {
	if k < 0 {
		return fmt.Errorf("refresh log retention must be >= 0, got %d", k)
	}

	db := l.db.WithContext(ctx)
	var res *gorm.DB
	if k == 0 {
		res = db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.RefreshLog{})
	} else {
		newest := db.Model(&models.RefreshLog{}).
			Select("id").
			Order("refreshed_at DESC, id DESC").
			Limit(k)
		res = db.Where("id NOT IN (?)", newest).Delete(&models.RefreshLog{})
	}
	if res.Error != nil {
		return fmt.Errorf("failed to trim refresh log: %w", res.Error)
	}
	return nil
}

// Latest returns up to limit entries, newest first
func (l *RefreshLog) Latest(ctx context.Context, limit int) ([]models.RefreshLog, error) {
	var entries []models.RefreshLog
	err := l.db.WithContext(ctx).
		Order("refreshed_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh log: %w", err)
	}
	return entries, nil
}
