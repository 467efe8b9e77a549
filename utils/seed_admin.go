package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
)

// SeedAdminUser creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD if no user with that email exists yet.
func SeedAdminUser(ctx context.Context, users store.UserStore, hasher Hasher) error {
	email := NormalizeEmail(os.Getenv("ADMIN_EMAIL"))
	pass := os.Getenv("ADMIN_PASSWORD")

	if email == "" || pass == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("seed admin lookup failed: %w", err)
	}
	if existing != nil {
		log.Println("Admin user already exists:", email)
		return nil
	}

	hash, err := hasher.Hash(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = users.Create(ctx, &models.User{
		Email:        email,
		FirstName:    "Admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		// another instance won the race, nothing to do
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin insert failed: %w", err)
	}

	log.Println("Admin user seeded:", email)
	return nil
}
