package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/models"
)

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	require.Error(t, err)
}

func TestMintVerifyRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	role := models.RoleAdmin
	raw, err := codec.Mint(Claims{UserID: "user-1", Username: "alice", Role: &role})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.Role)
	assert.Equal(t, models.RoleAdmin, *claims.Role)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMintAssignsDistinctTokenIDs(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	first, err := codec.Mint(Claims{UserID: "user-1"})
	require.NoError(t, err)
	second, err := codec.Mint(Claims{UserID: "user-1"})
	require.NoError(t, err)

	a, err := codec.Verify(first)
	require.NoError(t, err)
	b, err := codec.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestVerifyExpired(t *testing.T) {
	// A negative TTL yields a token that is correctly signed but already
	// past its expiry.
	codec, err := NewCodec("test-secret", -time.Minute)
	require.NoError(t, err)

	raw, err := codec.Mint(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyInvalid(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewCodec("other-secret", time.Hour)
	require.NoError(t, err)

	good, err := codec.Mint(Claims{UserID: "user-1"})
	require.NoError(t, err)
	foreign, err := other.Mint(Claims{UserID: "user-1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"tampered signature", good[:len(good)-2] + "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.raw)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
