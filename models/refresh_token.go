package models

import "time"

// RefreshToken is a user's single session-continuation credential. Token is
// the opaque value handed to the client; the unique index on UserID means a
// fresh login supersedes any previous session at the storage layer.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
}
