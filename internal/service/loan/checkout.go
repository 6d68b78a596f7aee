package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Checkout lends one unit of an item to a borrower.
//
// Failures: domain.ErrDuplicateLoan when the borrower already holds the item,
// domain.ErrInvalidDueDate when the due date is outside (now, now+1 month],
// domain.ErrItemUnavailable when no unit is left or the item is unknown.
// On any failure nothing is persisted.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (*domain.Loan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		created   *domain.Loan
		remaining int
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.loans.FindActive(txCtx, input.ItemID, input.BorrowerID)
		switch {
		case err == nil:
			return domain.ErrDuplicateLoan
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("find active loan: %w", err)
		}

		if err := domain.ValidateDueDate(now, input.DueDate); err != nil {
			return err
		}

		remaining, err = s.items.TryDecrement(txCtx, input.ItemID)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("item %s: %w", input.ItemID, domain.ErrItemUnavailable)
			}
			return fmt.Errorf("take unit: %w", err)
		}

		l := &domain.Loan{
			ID:         uuid.New(),
			ItemID:     input.ItemID,
			BorrowerID: input.BorrowerID,
			BorrowedAt: now,
			DueDate:    input.DueDate.UTC(),
		}
		if err := s.loans.Create(txCtx, l); err != nil {
			// A concurrent checkout of the same pair won the race.
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.ErrDuplicateLoan
			}
			return fmt.Errorf("create loan: %w", err)
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "loan checked out",
		slog.String("loan_id", created.ID.String()),
		slog.String("item_id", created.ItemID.String()),
		slog.String("borrower_id", created.BorrowerID.String()),
		slog.Time("due_date", created.DueDate),
		slog.Int("remaining", remaining),
	)

	return created, nil
}
