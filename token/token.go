// Package token mints and verifies the signed access tokens that prove a
// user's identity for a single request window. Tokens are self-contained:
// verification needs only the shared secret, never a store lookup.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"usersvc/models"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other failure: bad signature, malformed
	// structure, wrong signing method.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload carried inside an access token. Username and Role
// are only populated on tokens minted by the refresh flow; authorization
// still resolves the subject against the store, so they are informational.
type Claims struct {
	UserID   string       `json:"id"`
	Username string       `json:"username,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access tokens with a process-wide HMAC secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec fails on an empty secret; that is a configuration error the
// process must not start with.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Mint signs claims with issued-at now and expiry now + the configured TTL.
// Each token gets a fresh ID (jti) so individual tokens can be denylisted.
func (c *Codec) Mint(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
