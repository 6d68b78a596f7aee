package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// DeleteLoan permanently removes a loan record. If the loan was still active
// and its item still exists, the unit goes back to inventory in the same
// transaction. Returns domain.ErrLoanNotFound when the loan does not exist.
func (s *Service) DeleteLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	if loanID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var (
		deleted  *domain.Loan
		restored bool
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.loans.Delete(txCtx, loanID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrLoanNotFound
			}
			return fmt.Errorf("delete loan: %w", err)
		}

		if !deleted.IsActive() || deleted.ItemID == uuid.Nil {
			return nil
		}

		if _, err := s.items.Increment(txCtx, deleted.ItemID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("restore unit: %w", err)
		}
		restored = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "loan deleted",
		slog.String("loan_id", deleted.ID.String()),
		slog.Bool("was_active", deleted.IsActive()),
		slog.Bool("unit_restored", restored),
	)

	return deleted, nil
}
