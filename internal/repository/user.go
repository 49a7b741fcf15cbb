package repository

import (
	"context"

	"intranet/internal/model"
)

// UserRepository defines identity-store access using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// FindByEmail returns the single user with exactly this email.
	// It returns sql.ErrNoRows if no user matches; a query matching more
	// than one row is treated the same way by the implementation.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
