package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"intranet/internal/model"
	"intranet/internal/repository"
)

// ErrInvalidCredential is returned for every authentication failure cause:
// unknown email and wrong password are deliberately indistinguishable.
var ErrInvalidCredential = errors.New("invalid credential")

// AuthService verifies submitted credentials against the identity store.
type AuthService interface {
	// Login returns the user on success and ErrInvalidCredential otherwise.
	// The plaintext password is compared against the stored bcrypt hash and
	// is never logged or persisted.
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}
