package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/models"
)

func TestMemoryUserUniqueness(t *testing.T) {
	s := NewMemory()

	require.NoError(t, s.CreateUser(&models.User{ID: "u1", Username: "alice"}))
	err := s.CreateUser(&models.User{ID: "u2", Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := s.UserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = s.UserByUsername("bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateUser(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.CreateUser(&models.User{ID: "u1", Username: "alice"}))
	require.NoError(t, s.CreateUser(&models.User{ID: "u2", Username: "bob"}))

	// renaming over an existing username hits the uniqueness backstop
	err := s.UpdateUser("u2", map[string]interface{}{"username": "alice"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.UpdateUser("u2", map[string]interface{}{
		"username": "bobby",
		"role":     models.RoleAdmin,
		"position": "ops",
	}))
	got, err := s.UserByID("u2")
	require.NoError(t, err)
	assert.Equal(t, "bobby", got.Username)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, "ops", got.Position)

	// updating a missing user is not an error
	require.NoError(t, s.UpdateUser("missing", map[string]interface{}{"name": "x"}))
}

func TestMemoryDeleteUser(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.CreateUser(&models.User{ID: "u1", Username: "alice"}))

	require.NoError(t, s.DeleteUser("u1"))
	_, err := s.UserByID("u1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteUser("u1"), ErrNotFound)
}

func TestMemoryRefreshTokenUpsert(t *testing.T) {
	s := NewMemory()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, s.SaveRefreshToken(&models.RefreshToken{Token: "first", UserID: "u1", ExpiresAt: exp}))
	require.NoError(t, s.SaveRefreshToken(&models.RefreshToken{Token: "second", UserID: "u1", ExpiresAt: exp}))

	// one live token per user: the first value is gone
	_, err := s.RefreshTokenByValue("first")
	assert.ErrorIs(t, err, ErrNotFound)

	rt, err := s.RefreshTokenByValue("second")
	require.NoError(t, err)
	assert.Equal(t, "u1", rt.UserID)
}

func TestMemoryRefreshTokenDelete(t *testing.T) {
	s := NewMemory()
	rt := &models.RefreshToken{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.SaveRefreshToken(rt))

	require.NoError(t, s.DeleteRefreshTokenByID(rt.ID))
	_, err := s.RefreshTokenByValue("tok")
	assert.ErrorIs(t, err, ErrNotFound)

	// both delete paths are idempotent
	require.NoError(t, s.DeleteRefreshTokenByID(rt.ID))
	require.NoError(t, s.DeleteRefreshTokensByUser("u1"))
}
