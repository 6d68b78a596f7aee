package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// RescheduleDueDate moves the due date of an active loan. The new date must
// satisfy the same window as a checkout, measured from now.
//
// Failures: domain.ErrLoanNotFound, domain.ErrLoanAlreadyClosed,
// domain.ErrInvalidDueDate.
func (s *Service) RescheduleDueDate(ctx context.Context, input RescheduleInput) (*domain.Loan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var updated *domain.Loan

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.loans.GetByID(txCtx, input.LoanID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrLoanNotFound
			}
			return fmt.Errorf("get loan: %w", err)
		}
		if !current.IsActive() {
			return domain.ErrLoanAlreadyClosed
		}

		if err := domain.ValidateDueDate(now, input.DueDate); err != nil {
			return err
		}

		updated, err = s.loans.UpdateDueDate(txCtx, input.LoanID, input.DueDate.UTC())
		if err != nil {
			// Returned between the read and the guarded update.
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrLoanAlreadyClosed
			}
			return fmt.Errorf("update due date: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "loan rescheduled",
		slog.String("loan_id", updated.ID.String()),
		slog.Time("due_date", updated.DueDate),
	)

	return updated, nil
}
