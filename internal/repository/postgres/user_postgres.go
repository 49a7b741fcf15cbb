package postgres

import (
	"context"
	"database/sql"

	"intranet/internal/model"
	"intranet/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByEmail fetches one user by exact email match. The query demands
// exactly one row: zero rows surface as sql.ErrNoRows, and a duplicated
// email (which the schema's unique constraint prevents anyway) would never
// return a merged or arbitrary row because only a single-row scan is done.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, name, email, role, password_hash
		FROM users
		WHERE email = $1
	`
	row := r.db.QueryRowContext(ctx, q, email)
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
