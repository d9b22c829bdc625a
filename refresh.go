package main

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"usersvc/models"
	"usersvc/store"
)

// ErrRefreshExpired distinguishes an expired refresh token from one that
// is simply unknown (store.ErrNotFound).
var ErrRefreshExpired = errors.New("refresh token expired")

// RefreshManager owns the lifecycle of refresh tokens: issue on login,
// validate on refresh, revoke on logout. The token value itself is an
// opaque UUIDv4, never interpreted.
type RefreshManager struct {
	store store.Store
	ttl   time.Duration
}

func NewRefreshManager(st store.Store, ttl time.Duration) *RefreshManager {
	return &RefreshManager{store: st, ttl: ttl}
}

// Issue creates a fresh token for the user, superseding any live one. The
// value is not rotated again until the next login or explicit revocation.
func (m *RefreshManager) Issue(userID string) (*models.RefreshToken, error) {
	rt := &models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.store.SaveRefreshToken(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// Validate looks the token up by value. An expired record is deleted before
// the failure is reported, so a retry with the same value gets
// store.ErrNotFound.
func (m *RefreshManager) Validate(value string) (*models.RefreshToken, error) {
	rt, err := m.store.RefreshTokenByValue(value)
	if err != nil {
		return nil, err
	}
	if !rt.ExpiresAt.After(time.Now()) {
		if err := m.store.DeleteRefreshTokenByID(rt.ID); err != nil {
			return nil, err
		}
		return nil, ErrRefreshExpired
	}
	return rt, nil
}

// Revoke deletes the user's live refresh token, if any.
func (m *RefreshManager) Revoke(userID string) error {
	return m.store.DeleteRefreshTokensByUser(userID)
}
