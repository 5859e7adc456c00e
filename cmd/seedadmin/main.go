package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gemtrove/internal/config"
	"gemtrove/internal/repository/postgres"
)

// Creates or replaces an admin account: seedadmin <email> <password> [full name]
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: seedadmin <email> <password> [full name]")
	}
	email, password := os.Args[1], os.Args[2]
	fullName := "Administrator"
	if len(os.Args) > 3 {
		fullName = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO admin_users (id, email, password_hash, full_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, $5)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3, full_name = $4, is_active = true, updated_at = $5`,
		uuid.New(), email, string(hash), fullName, now)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	log.Printf("admin %s ready", email)
}
