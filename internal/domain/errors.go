package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds used across all layers. Specific failures below wrap
// one of these, so callers can branch on the kind with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrEmptyResult       = errors.New("empty result")

	// ErrIntegrity marks a partially applied change that could not be undone.
	// It requires operator intervention.
	ErrIntegrity = errors.New("data integrity lost")
)

// Loan lifecycle failures.
var (
	ErrLoanNotFound      = fmt.Errorf("%w: no active loan", ErrNotFound)
	ErrDuplicateLoan     = fmt.Errorf("%w: borrower already holds an active loan for this item", ErrConflict)
	ErrInvalidDueDate    = fmt.Errorf("%w: due date must be in the future and at most one month ahead", ErrPolicyViolation)
	ErrLoanAlreadyClosed = fmt.Errorf("%w: loan already returned", ErrPolicyViolation)
	ErrItemUnavailable   = fmt.Errorf("%w: item unavailable", ErrResourceExhausted)
	ErrInsufficientStock = fmt.Errorf("%w: no units left", ErrResourceExhausted)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
