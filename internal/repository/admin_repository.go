package repository

import (
	"context"
	"strings"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresAdminRepository struct {
	db database.DB
}

func NewPostgresAdminRepository(db database.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (user.Admin, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	var a user.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if isNoRows(err) {
			return user.Admin{}, user.ErrNotFound
		}
		return user.Admin{}, err
	}
	return a, nil
}

func (r *PostgresAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Admin, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE id = $1`, id,
	)
	var a user.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if isNoRows(err) {
			return user.Admin{}, user.ErrNotFound
		}
		return user.Admin{}, err
	}
	return a, nil
}

func (r *PostgresAdminRepository) Create(ctx context.Context, a user.Admin) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admins (id, email, password_hash) VALUES ($1,$2,$3)`,
		a.ID, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash,
	)
	return err
}

func (r *PostgresAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
