// Package inventory implements the item stock store using PostgreSQL.
// Quantity changes are single conditional statements, so concurrent callers
// can never drive a count below zero.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Repo provides item quantity persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new inventory repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const (
	tryDecrementSQL = `
UPDATE items SET quantity = quantity - 1, updated_at = now()
WHERE id = $1 AND quantity > 0
RETURNING quantity`

	incrementSQL = `
UPDATE items SET quantity = quantity + 1, updated_at = now()
WHERE id = $1
RETURNING quantity`

	itemExistsSQL = `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`

	getItemSQL = `
SELECT id, title, author, isbn, shelf_location, quantity, created_at, updated_at
FROM items WHERE id = $1`
)

// TryDecrement takes one unit of the item and returns the remaining quantity.
// Returns domain.ErrInsufficientStock when the quantity is already zero and
// domain.ErrNotFound when the item does not exist.
func (r *Repo) TryDecrement(ctx context.Context, itemID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var remaining int
	err := q.QueryRow(ctx, tryDecrementSQL, itemID).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, postgres.MapError(err, "item", itemID)
	}

	// No row updated: tell an empty shelf from an unknown item.
	var exists bool
	if err := q.QueryRow(ctx, itemExistsSQL, itemID).Scan(&exists); err != nil {
		return 0, postgres.MapError(err, "item", itemID)
	}
	if !exists {
		return 0, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return 0, fmt.Errorf("item %s: %w", itemID, domain.ErrInsufficientStock)
}

// Increment puts one unit of the item back and returns the new quantity.
// Returns domain.ErrNotFound when the item does not exist.
func (r *Repo) Increment(ctx context.Context, itemID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var quantity int
	if err := q.QueryRow(ctx, incrementSQL, itemID).Scan(&quantity); err != nil {
		return 0, postgres.MapError(err, "item", itemID)
	}
	return quantity, nil
}

// GetByID returns an item by primary key.
func (r *Repo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var it domain.Item
	err := q.QueryRow(ctx, getItemSQL, itemID).Scan(
		&it.ID, &it.Title, &it.Author, &it.ISBN, &it.ShelfLocation, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "item", itemID)
	}
	return &it, nil
}
