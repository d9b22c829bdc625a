// Package store is the narrow persistence surface the session layer needs:
// user records and refresh-token records, nothing else.
package store

import (
	"errors"

	"usersvc/models"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

// Store is implemented by the Postgres-backed store and by the in-memory
// store the tests run against.
type Store interface {
	CreateUser(u *models.User) error
	UserByID(id string) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
	Users() ([]models.User, error)
	// UpdateUser applies the given column values to the user row; updating a
	// missing row is not an error.
	UpdateUser(id string, fields map[string]interface{}) error
	DeleteUser(id string) error

	// SaveRefreshToken upserts on UserID, replacing any live token the user
	// already holds.
	SaveRefreshToken(rt *models.RefreshToken) error
	RefreshTokenByValue(token string) (*models.RefreshToken, error)
	DeleteRefreshTokenByID(id uint) error
	// DeleteRefreshTokensByUser is idempotent; deleting for a user with no
	// live token is a no-op.
	DeleteRefreshTokensByUser(userID string) error
}
