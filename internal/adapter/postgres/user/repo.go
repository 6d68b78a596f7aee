// Package user reads and updates borrower accounts in PostgreSQL. Accounts are
// owned by the identity collaborator; the loan engine only looks them up and
// operator tooling may change their role.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Repo provides borrower account access backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const (
	getByIDSQL = `
SELECT id, name, email, role, created_at
FROM users WHERE id = $1`

	getByEmailSQL = `
SELECT id, name, email, role, created_at
FROM users WHERE lower(email) = lower($1)`

	setRoleSQL = `
UPDATE users SET role = $2
WHERE lower(email) = lower($1)
RETURNING id, name, email, role, created_at`
)

// GetByID returns a borrower by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	var b domain.Borrower
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &b, getByIDSQL, id); err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "user", id)
	}
	return &b, nil
}

// GetByEmail returns a borrower by email, compared case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Borrower, error) {
	var b domain.Borrower
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &b, getByEmailSQL, email); err != nil {
		return nil, mapEmailError(err, email)
	}
	return &b, nil
}

// SetRole changes the role of the account with the given email and returns
// the updated account.
func (r *Repo) SetRole(ctx context.Context, email string, role domain.Role) (*domain.Borrower, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be MEMBER or ADMIN")
	}

	var b domain.Borrower
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &b, setRoleSQL, email, string(role)); err != nil {
		return nil, mapEmailError(err, email)
	}
	return &b, nil
}

func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)
}

func mapEmailError(err error, email string) error {
	if notFound(err) {
		return fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
	}
	return postgres.MapError(err, "user", uuid.Nil)
}
