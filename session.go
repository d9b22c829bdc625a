package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"usersvc/models"
	"usersvc/store"
	"usersvc/token"
)

// Session protocol errors, recovered at the handler boundary and mapped to
// status codes there.
var (
	ErrUnknownUsername    = errors.New("username is not registered")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrDuplicateUsername  = errors.New("username is already in use")
)

type RegisterRequest struct {
	Name     string
	Username string
	Password string
	Role     models.Role
	Position string
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a new account. The duplicate check runs before the write;
// the store's unique constraint is the backstop for the race in between.
func (a *app) Register(req RegisterRequest) (*models.User, error) {
	if _, err := a.store.UserByUsername(req.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Username: req.Username,
		Password: string(hash),
		Role:     req.Role,
		Position: req.Position,
	}
	if err := a.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials, then mints an access token and issues a
// refresh token. Both must succeed for the login to be reported as such.
func (a *app) Login(username, password string) (*LoginResult, error) {
	user, err := a.store.UserByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUsername
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	access, err := a.codec.Mint(token.Claims{UserID: user.ID})
	if err != nil {
		return nil, err
	}
	rt, err := a.refresh.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: access, RefreshToken: rt.Token}, nil
}

// Refresh exchanges a live refresh token for a new access token. The access
// token minted here carries enriched claims; the refresh token value stays
// the same until its original expiry or an explicit logout.
func (a *app) Refresh(value string) (*RefreshResult, error) {
	rt, err := a.refresh.Validate(value)
	if err != nil {
		return nil, err
	}
	user, err := a.store.UserByID(rt.UserID)
	if err != nil {
		// The owner vanished under a live token. Not wrapped: the handler
		// must not see this as store.ErrNotFound.
		return nil, fmt.Errorf("load refresh token owner: %v", err)
	}
	role := user.Role
	access, err := a.codec.Mint(token.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     &role,
	})
	if err != nil {
		return nil, err
	}
	return &RefreshResult{AccessToken: access, RefreshToken: rt.Token}, nil
}

// Logout revokes the user's refresh token and denylists the presented
// access token for the rest of its lifetime.
func (a *app) Logout(user *models.User, claims token.Claims) error {
	if err := a.refresh.Revoke(user.ID); err != nil {
		return err
	}
	a.deny.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}
