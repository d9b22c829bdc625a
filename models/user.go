package models

import "time"

// User is an account record. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:255" json:"name"`
	Username  string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:128;not null" json:"password"`
	Role      Role      `gorm:"not null;default:0" json:"role"`
	Position  string    `gorm:"size:255" json:"position"`
}
