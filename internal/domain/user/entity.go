package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("admin not found")

// Admin is the single account allowed to mutate portfolio content.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Repository interface {
	GetByEmail(ctx context.Context, email string) (Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (Admin, error)
	Create(ctx context.Context, a Admin) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
