package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"usersvc/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) CreateUser(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Gorm) UserByID(id string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) UserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) Users() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Gorm) UpdateUser(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Gorm) DeleteUser(id string) error {
	res := s.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) SaveRefreshToken(rt *models.RefreshToken) error {
	// The unique index on user_id closes the race between concurrent logins
	// for the same user: last writer wins.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
	}).Create(rt).Error
}

func (s *Gorm) RefreshTokenByValue(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.First(&rt, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (s *Gorm) DeleteRefreshTokenByID(id uint) error {
	return s.db.Delete(&models.RefreshToken{}, id).Error
}

func (s *Gorm) DeleteRefreshTokensByUser(userID string) error {
	return s.db.Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

func isUniqueConstraintError(err error) bool {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
