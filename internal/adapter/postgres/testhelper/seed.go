package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBorrower creates a MEMBER user.
func SeedBorrower(t *testing.T, pool *pgxpool.Pool) domain.Borrower {
	t.Helper()
	return SeedBorrowerWithRole(t, pool, domain.RoleMember)
}

// SeedBorrowerWithRole creates a user with the given role.
func SeedBorrowerWithRole(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Borrower {
	t.Helper()

	suffix := uniqueSuffix()
	b := domain.Borrower{
		ID:        uuid.New(),
		Name:      "Test Borrower " + suffix,
		Email:     "borrower-" + suffix + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Email, string(b.Role), b.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBorrower: %v", err)
	}
	return b
}

// SeedItem creates an item with the given available quantity.
func SeedItem(t *testing.T, pool *pgxpool.Pool, quantity int) domain.Item {
	t.Helper()
	return SeedItemTitled(t, pool, "Test Book "+uniqueSuffix(), quantity)
}

// SeedItemTitled creates an item with a specific title.
func SeedItemTitled(t *testing.T, pool *pgxpool.Pool, title string, quantity int) domain.Item {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:            uuid.New(),
		Title:         title,
		Author:        "Test Author",
		ISBN:          "978-" + uniqueSuffix(),
		ShelfLocation: "A-1",
		Quantity:      quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, title, author, isbn, shelf_location, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Title, item.Author, item.ISBN, item.ShelfLocation, item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}
	return item
}

// SeedLoan inserts a loan row directly, bypassing inventory. Use it to build
// report fixtures with arbitrary timestamps. returnedAt may be nil.
func SeedLoan(t *testing.T, pool *pgxpool.Pool, itemID, borrowerID uuid.UUID, borrowedAt, dueDate time.Time, returnedAt *time.Time) domain.Loan {
	t.Helper()

	loan := domain.Loan{
		ID:         uuid.New(),
		ItemID:     itemID,
		BorrowerID: borrowerID,
		BorrowedAt: borrowedAt.UTC().Truncate(time.Microsecond),
		DueDate:    dueDate.UTC().Truncate(time.Microsecond),
	}
	if returnedAt != nil {
		r := returnedAt.UTC().Truncate(time.Microsecond)
		loan.ReturnedAt = &r
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO loans (id, item_id, borrower_id, borrowed_at, due_date, returned_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		loan.ID, loan.ItemID, loan.BorrowerID, loan.BorrowedAt, loan.DueDate, loan.ReturnedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLoan: %v", err)
	}
	return loan
}

// ItemQuantity reads the current quantity of an item.
func ItemQuantity(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID) int {
	t.Helper()

	var q int
	if err := pool.QueryRow(context.Background(), `SELECT quantity FROM items WHERE id = $1`, itemID).Scan(&q); err != nil {
		t.Fatalf("testhelper: ItemQuantity: %v", err)
	}
	return q
}

// CountActiveLoans counts active loans for an item.
func CountActiveLoans(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM loans WHERE item_id = $1 AND returned_at IS NULL`, itemID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountActiveLoans: %v", err)
	}
	return n
}
