// Command create_user creates an account directly in the database, for
// bootstrapping operators without going through the HTTP API.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"usersvc/models"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <username> <password> [role]")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]

	role := models.RoleUser
	if len(os.Args) > 3 {
		parsed, err := models.ParseRole(os.Args[3])
		if err != nil {
			log.Fatalf("invalid role %q (want user, admin or superadmin)", os.Args[3])
		}
		role = parsed
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var existing models.User
	if err := db.First(&existing, "username = ?", username).Error; err == nil {
		fmt.Printf("user %s already exists (id=%s)\n", username, existing.ID)
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created %s %s id=%s\n", role, username, user.ID)
}
