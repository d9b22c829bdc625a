package store

import (
	"sort"
	"sync"
	"time"

	"usersvc/models"
)

// Memory is an in-memory Store used by the test suites. It enforces the
// same uniqueness invariants as the Postgres schema.
type Memory struct {
	mu      sync.Mutex
	users   map[string]models.User         // keyed by user ID
	tokens  map[string]models.RefreshToken // keyed by user ID (one per user)
	nextRID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[string]models.User),
		tokens: make(map[string]models.RefreshToken),
	}
}

func (s *Memory) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Memory) UserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *Memory) UserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) Users() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *Memory) UpdateUser(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	if v, ok := fields["username"]; ok {
		username := v.(string)
		for uid, existing := range s.users {
			if uid != id && existing.Username == username {
				return ErrDuplicate
			}
		}
		u.Username = username
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["password"]; ok {
		u.Password = v.(string)
	}
	if v, ok := fields["role"]; ok {
		u.Role = v.(models.Role)
	}
	if v, ok := fields["position"]; ok {
		u.Position = v.(string)
	}
	s.users[id] = u
	return nil
}

func (s *Memory) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Memory) SaveRefreshToken(rt *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tokens[rt.UserID]; ok {
		rt.ID = existing.ID
	} else {
		s.nextRID++
		rt.ID = s.nextRID
	}
	s.tokens[rt.UserID] = *rt
	return nil
}

func (s *Memory) RefreshTokenByValue(token string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.tokens {
		if rt.Token == token {
			rt := rt
			return &rt, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) DeleteRefreshTokenByID(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, rt := range s.tokens {
		if rt.ID == id {
			delete(s.tokens, userID)
			return nil
		}
	}
	return nil
}

func (s *Memory) DeleteRefreshTokensByUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}
