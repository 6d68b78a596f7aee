package loan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// CheckoutInput holds the parameters for checking out one unit of an item.
type CheckoutInput struct {
	ItemID     uuid.UUID
	BorrowerID uuid.UUID
	DueDate    time.Time
}

// Validate checks all fields and collects all errors. The due-date window is
// a lifecycle rule and is checked by Checkout itself.
func (i CheckoutInput) Validate() error {
	var errs []domain.FieldError
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.BorrowerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "borrower_id", Message: "required"})
	}
	if i.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReturnInput identifies the active loan to close.
type ReturnInput struct {
	ItemID     uuid.UUID
	BorrowerID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ReturnInput) Validate() error {
	var errs []domain.FieldError
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.BorrowerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "borrower_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RescheduleInput holds the parameters for moving a loan's due date.
type RescheduleInput struct {
	LoanID  uuid.UUID
	DueDate time.Time
}

// Validate checks all fields and collects all errors.
func (i RescheduleInput) Validate() error {
	var errs []domain.FieldError
	if i.LoanID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListMyLoansInput selects a page of the borrower's currently held items.
// Page is 1-based; zero means the first page.
type ListMyLoansInput struct {
	BorrowerID uuid.UUID
	Page       int
}

// Validate checks all fields and collects all errors.
func (i ListMyLoansInput) Validate() error {
	var errs []domain.FieldError
	if i.BorrowerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "borrower_id", Message: "required"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be positive"})
	} else if i.Page > domain.MaxPageNumber {
		errs = append(errs, domain.FieldError{Field: "page", Message: fmt.Sprintf("must be at most %d", domain.MaxPageNumber)})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MyLoansResult is one page of items the borrower currently holds.
type MyLoansResult struct {
	Items      []domain.Item `json:"items"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}
