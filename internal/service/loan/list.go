package loan

import (
	"context"
	"fmt"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ListMyLoans returns one page of the items the borrower currently holds.
func (s *Service) ListMyLoans(ctx context.Context, input ListMyLoansInput) (*MyLoansResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	page := domain.Page{Number: max(input.Page, 1), Size: s.pageSize}

	items, total, err := s.loans.ListActiveItemsByBorrower(ctx, input.BorrowerID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}

	return &MyLoansResult{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}
