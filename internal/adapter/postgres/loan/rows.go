package loan

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// loanRow mirrors the loans table. item_id and borrower_id become NULL when
// the referenced record is deleted.
type loanRow struct {
	ID         uuid.UUID  `db:"id"`
	ItemID     *uuid.UUID `db:"item_id"`
	BorrowerID *uuid.UUID `db:"borrower_id"`
	BorrowedAt time.Time  `db:"borrowed_at"`
	DueDate    time.Time  `db:"due_date"`
	ReturnedAt *time.Time `db:"returned_at"`
}

func (r loanRow) toDomain() domain.Loan {
	l := domain.Loan{
		ID:         r.ID,
		BorrowedAt: r.BorrowedAt,
		DueDate:    r.DueDate,
		ReturnedAt: r.ReturnedAt,
	}
	if r.ItemID != nil {
		l.ItemID = *r.ItemID
	}
	if r.BorrowerID != nil {
		l.BorrowerID = *r.BorrowerID
	}
	return l
}

type itemRow struct {
	ID            uuid.UUID `db:"id"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	ISBN          string    `db:"isbn"`
	ShelfLocation string    `db:"shelf_location"`
	Quantity      int       `db:"quantity"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r itemRow) toDomain() domain.Item {
	return domain.Item{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		ShelfLocation: r.ShelfLocation,
		Quantity:      r.Quantity,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
