package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ListAllLoans returns one page of loans matching the filter, ordered by
// borrow time, together with the total number of matches.
func (s *Service) ListAllLoans(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	page := domain.Page{Number: max(input.Page, 1), Size: s.pageSize}
	views, total, err := s.reports.Query(ctx, input.Filter.Criteria(s.now()), &page)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	if views == nil {
		views = []domain.LoanView{}
	}

	return &ListResult{
		Items:      views,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}
