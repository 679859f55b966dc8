package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an authenticated API user, keyed by the token subject
type User struct {
	UID       string    `gorm:"primaryKey;size:128" json:"uid"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Watchlist links a user to a cached symbol they follow.
// The composite primary key prevents watching the same symbol twice.
type Watchlist struct {
	UserID    string    `gorm:"primaryKey;size:128" json:"user_id"`
	Symbol    string    `gorm:"primaryKey;size:16;index" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the singular table name
func (Watchlist) TableName() string {
	return "watchlist"
}

// MigrateUserModels runs database migrations for user-related models
func MigrateUserModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Watchlist{},
	)
}
