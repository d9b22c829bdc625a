package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"usersvc/models"
)

func openDB(dsn string, lgr *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	seedSuperAdmin(db, lgr)
	return db, nil
}

// seedSuperAdmin creates the initial superadmin account so a fresh database
// has at least one account able to manage users.
func seedSuperAdmin(db *gorm.DB, lgr *slog.Logger) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("superadmin123"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error("failed to hash seed password", "err", err)
		return
	}
	admin := models.User{
		ID:       uuid.NewString(),
		Name:     "Super Admin",
		Username: "superadmin",
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		lgr.Error("failed to seed superadmin user", "err", err)
		return
	}
	lgr.Info("seeded superadmin user; change the default password", "username", admin.Username)
}
