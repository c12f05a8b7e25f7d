package seeder

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the single admin account from configuration. It
// never overwrites an existing row, so password changes go through the
// database, not the environment.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		// Nothing configured; the API still serves public reads.
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "admins", "id", "email", "password_hash"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO admins (id, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hash),
	)
	return err
}
