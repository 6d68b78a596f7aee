// Package loan implements the loan ledger using PostgreSQL.
// Every mutating statement on an active loan is guarded by
// "returned_at IS NULL", so a closed loan can never be reopened or edited.
package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ActivePairIndex is the partial unique index that enforces one active loan
// per (item, borrower).
const ActivePairIndex = "loans_active_pair_uidx"

// Repo provides loan persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new loan repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const loanColumns = `id, item_id, borrower_id, borrowed_at, due_date, returned_at`

const (
	findActiveSQL = `SELECT ` + loanColumns + ` FROM loans
WHERE item_id = $1 AND borrower_id = $2 AND returned_at IS NULL`

	getByIDSQL = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	createSQL = `INSERT INTO loans (` + loanColumns + `) VALUES ($1, $2, $3, $4, $5, NULL)`

	closeSQL = `UPDATE loans SET returned_at = $2
WHERE id = $1 AND returned_at IS NULL
RETURNING ` + loanColumns

	updateDueDateSQL = `UPDATE loans SET due_date = $2
WHERE id = $1 AND returned_at IS NULL
RETURNING ` + loanColumns

	deleteSQL = `DELETE FROM loans WHERE id = $1 RETURNING ` + loanColumns

	listActiveItemsSQL = `
SELECT i.id, i.title, i.author, i.isbn, i.shelf_location, i.quantity, i.created_at, i.updated_at
FROM loans l
JOIN items i ON i.id = l.item_id
WHERE l.borrower_id = $1 AND l.returned_at IS NULL
ORDER BY l.borrowed_at, l.id
LIMIT $2 OFFSET $3`

	countActiveItemsSQL = `
SELECT COUNT(*)
FROM loans l
JOIN items i ON i.id = l.item_id
WHERE l.borrower_id = $1 AND l.returned_at IS NULL`
)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindActive returns the active loan for the (item, borrower) pair.
// Returns domain.ErrNotFound when there is none.
func (r *Repo) FindActive(ctx context.Context, itemID, borrowerID uuid.UUID) (*domain.Loan, error) {
	return r.getOne(ctx, itemID, findActiveSQL, itemID, borrowerID)
}

// GetByID returns a loan by primary key, active or closed.
func (r *Repo) GetByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	return r.getOne(ctx, loanID, getByIDSQL, loanID)
}

// ListActiveItemsByBorrower returns the items a borrower currently holds,
// ordered by checkout time, plus the total number of such items.
func (r *Repo) ListActiveItemsByBorrower(ctx context.Context, borrowerID uuid.UUID, limit, offset int) ([]domain.Item, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countActiveItemsSQL, borrowerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count active loans: %w", err)
	}
	if total == 0 {
		return []domain.Item{}, 0, nil
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, listActiveItemsSQL, borrowerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list active loans: %w", err)
	}

	items := make([]domain.Item, len(rows))
	for i, row := range rows {
		items[i] = row.toDomain()
	}
	return items, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new active loan. A second active loan for the same
// (item, borrower) pair violates ActivePairIndex and returns
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, l *domain.Loan) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, createSQL, l.ID, l.ItemID, l.BorrowerID, l.BorrowedAt, l.DueDate)
	if err != nil {
		return postgres.MapError(err, "loan", l.ID)
	}
	return nil
}

// Close stamps returned_at on an active loan and returns the closed loan.
// Returns domain.ErrNotFound when the loan is absent or already closed.
func (r *Repo) Close(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*domain.Loan, error) {
	return r.getOne(ctx, loanID, closeSQL, loanID, returnedAt)
}

// UpdateDueDate moves the due date of an active loan.
// Returns domain.ErrNotFound when the loan is absent or already closed.
func (r *Repo) UpdateDueDate(ctx context.Context, loanID uuid.UUID, due time.Time) (*domain.Loan, error) {
	return r.getOne(ctx, loanID, updateDueDateSQL, loanID, due)
}

// Delete removes a loan record and returns what was deleted.
func (r *Repo) Delete(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	return r.getOne(ctx, loanID, deleteSQL, loanID)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, key uuid.UUID, sql string, args ...any) (*domain.Loan, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row loanRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("loan %s: %w", key, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "loan", key)
	}

	l := row.toDomain()
	return &l, nil
}
