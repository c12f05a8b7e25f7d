package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/domain/user"
	"portfolio-api/internal/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")
)

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (jwt.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
}

// Service authenticates the admin account. There is no registration
// endpoint; the account comes from the seeder.
type Service struct {
	admins user.Repository
	tokens jwt.Service
}

func NewService(admins user.Repository, tokens jwt.Service) *Service {
	return &Service{admins: admins, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, in LoginInput) (jwt.Pair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return jwt.Pair{}, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.Pair{}, ErrInvalidCredentials
		}
		return jwt.Pair{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return jwt.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(admin.ID, admin.Email)
	if err != nil {
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The admin
// row is re-read so tokens minted before a database re-seed die here.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	claims, err := s.tokens.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return jwt.Pair{}, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.Pair{}, ErrInvalidCredentials
		}
		return jwt.Pair{}, ErrInternal
	}

	pair, err := s.tokens.GeneratePair(admin.ID, admin.Email)
	if err != nil {
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
