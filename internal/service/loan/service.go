// Package loan implements the loan lifecycle: checkout, return, due date
// changes and administrative removal. Every mutating operation runs in one
// database transaction so inventory and loan records change together.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// DefaultPageSize is used when NewService receives a non-positive page size.
const DefaultPageSize = 10

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type inventoryRepo interface {
	TryDecrement(ctx context.Context, itemID uuid.UUID) (int, error)
	Increment(ctx context.Context, itemID uuid.UUID) (int, error)
}

type loanRepo interface {
	FindActive(ctx context.Context, itemID, borrowerID uuid.UUID) (*domain.Loan, error)
	GetByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	Create(ctx context.Context, l *domain.Loan) error
	Close(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*domain.Loan, error)
	UpdateDueDate(ctx context.Context, loanID uuid.UUID, due time.Time) (*domain.Loan, error)
	Delete(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListActiveItemsByBorrower(ctx context.Context, borrowerID uuid.UUID, limit, offset int) ([]domain.Item, int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service coordinates the inventory store and the loan ledger.
type Service struct {
	items    inventoryRepo
	loans    loanRepo
	tx       txManager
	clock    clock
	pageSize int
	log      *slog.Logger
}

// NewService creates a new loan service.
func NewService(
	log *slog.Logger,
	items inventoryRepo,
	loans loanRepo,
	tx txManager,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		items:    items,
		loans:    loans,
		tx:       tx,
		clock:    systemClock{},
		pageSize: pageSize,
		log:      log.With("service", "loan"),
	}
}

// now returns the current instant at the precision PostgreSQL stores.
func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}
