package domain

import (
	"time"

	"github.com/google/uuid"
)

// Loan is one checkout-to-return record linking an item and a borrower.
// ReturnedAt is nil while the loan is active and is set exactly once.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	ItemID     uuid.UUID  `json:"itemId"`
	BorrowerID uuid.UUID  `json:"borrowerId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt"`
}

// IsActive reports whether the loan has not been returned yet.
func (l *Loan) IsActive() bool {
	return l.ReturnedAt == nil
}

// IsReturnedLate reports whether the loan was closed after its due date.
// Active loans are never "returned late", even when past due.
func (l *Loan) IsReturnedLate() bool {
	return l.ReturnedAt != nil && l.ReturnedAt.After(l.DueDate)
}

// IsPastDue reports whether an active loan has passed its due date at now.
func (l *Loan) IsPastDue(now time.Time) bool {
	return l.IsActive() && l.DueDate.Before(now)
}

// MaxDueDate returns the latest due date allowed for a loan created at now:
// one calendar month later.
func MaxDueDate(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// ValidateDueDate enforces the due-date policy: strictly after now and not
// after now plus one calendar month.
func ValidateDueDate(now, due time.Time) error {
	if !due.After(now) {
		return ErrInvalidDueDate
	}
	if due.After(MaxDueDate(now)) {
		return ErrInvalidDueDate
	}
	return nil
}
