package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// viewRow is one row of the loans/items/users left join. Item and user
// columns are NULL when the loan's reference was deleted.
type viewRow struct {
	ID         uuid.UUID  `db:"id"`
	BorrowedAt time.Time  `db:"borrowed_at"`
	ReturnedAt *time.Time `db:"returned_at"`
	DueDate    time.Time  `db:"due_date"`

	ItemID            *uuid.UUID `db:"item_id"`
	ItemTitle         *string    `db:"item_title"`
	ItemAuthor        *string    `db:"item_author"`
	ItemISBN          *string    `db:"item_isbn"`
	ItemQuantity      *int       `db:"item_quantity"`
	ItemShelfLocation *string    `db:"item_shelf_location"`

	UserID    *uuid.UUID `db:"user_id"`
	UserName  *string    `db:"user_name"`
	UserEmail *string    `db:"user_email"`
	UserRole  *string    `db:"user_role"`
}

func (r viewRow) toDomain() domain.LoanView {
	v := domain.LoanView{
		ID:         r.ID,
		BorrowedAt: r.BorrowedAt,
		ReturnedAt: r.ReturnedAt,
		DueDate:    r.DueDate,
	}

	if r.ItemID != nil {
		v.Item = &domain.ItemSummary{
			ID:            *r.ItemID,
			Title:         deref(r.ItemTitle),
			Author:        deref(r.ItemAuthor),
			ISBN:          deref(r.ItemISBN),
			ShelfLocation: deref(r.ItemShelfLocation),
		}
		if r.ItemQuantity != nil {
			v.Item.Quantity = *r.ItemQuantity
		}
	}

	if r.UserID != nil {
		v.Borrower = &domain.BorrowerSummary{
			ID:    *r.UserID,
			Name:  deref(r.UserName),
			Email: deref(r.UserEmail),
			Role:  domain.Role(deref(r.UserRole)),
		}
	}

	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
