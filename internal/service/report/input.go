package report

import (
	"fmt"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ListInput selects one page of the loan history. Page is 1-based; zero means
// the first page.
type ListInput struct {
	Filter domain.ReportFilter
	Page   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	errs := validateFilter(i.Filter)
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

func validateFilter(f domain.ReportFilter) []domain.FieldError {
	var errs []domain.FieldError
	if f.SinceDays != nil && *f.SinceDays < 0 {
		errs = append(errs, domain.FieldError{Field: "since_days", Message: "must not be negative"})
	}
	if f.Status != "" && !f.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be ALL, OVERDUE or PAST_DUE"})
	}
	return errs
}

// ListResult is one page of loans with the unpaginated match count.
type ListResult struct {
	Items      []domain.LoanView `json:"items"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}
