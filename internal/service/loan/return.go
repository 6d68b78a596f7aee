package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Return closes the borrower's active loan of an item and puts the unit back.
// Returns domain.ErrLoanNotFound when there is no active loan, including when
// the loan was already returned.
func (s *Service) Return(ctx context.Context, input ReturnInput) (*domain.Loan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var closed *domain.Loan

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		active, err := s.loans.FindActive(txCtx, input.ItemID, input.BorrowerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrLoanNotFound
			}
			return fmt.Errorf("find active loan: %w", err)
		}

		closed, err = s.loans.Close(txCtx, active.ID, now)
		if err != nil {
			// Closed by a concurrent return between the lookup and the update.
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrLoanNotFound
			}
			return fmt.Errorf("close loan: %w", err)
		}

		if _, err := s.items.Increment(txCtx, input.ItemID); err != nil {
			return fmt.Errorf("restore unit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "loan returned",
		slog.String("loan_id", closed.ID.String()),
		slog.String("item_id", input.ItemID.String()),
		slog.String("borrower_id", input.BorrowerID.String()),
		slog.Bool("late", closed.IsReturnedLate()),
	)

	return closed, nil
}
