package loan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// inventoryRepoMock
// ---------------------------------------------------------------------------

type inventoryRepoMock struct {
	TryDecrementFunc func(ctx context.Context, itemID uuid.UUID) (int, error)
	IncrementFunc    func(ctx context.Context, itemID uuid.UUID) (int, error)

	mu            sync.Mutex
	decrementArgs []uuid.UUID
	incrementArgs []uuid.UUID
}

func (m *inventoryRepoMock) TryDecrement(ctx context.Context, itemID uuid.UUID) (int, error) {
	m.mu.Lock()
	m.decrementArgs = append(m.decrementArgs, itemID)
	m.mu.Unlock()
	if m.TryDecrementFunc == nil {
		panic("inventoryRepoMock.TryDecrementFunc: method is nil but TryDecrement was just called")
	}
	return m.TryDecrementFunc(ctx, itemID)
}

func (m *inventoryRepoMock) Increment(ctx context.Context, itemID uuid.UUID) (int, error) {
	m.mu.Lock()
	m.incrementArgs = append(m.incrementArgs, itemID)
	m.mu.Unlock()
	if m.IncrementFunc == nil {
		panic("inventoryRepoMock.IncrementFunc: method is nil but Increment was just called")
	}
	return m.IncrementFunc(ctx, itemID)
}

func (m *inventoryRepoMock) TryDecrementCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decrementArgs
}

func (m *inventoryRepoMock) IncrementCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incrementArgs
}

// ---------------------------------------------------------------------------
// loanRepoMock
// ---------------------------------------------------------------------------

type loanRepoMock struct {
	FindActiveFunc                func(ctx context.Context, itemID, borrowerID uuid.UUID) (*domain.Loan, error)
	GetByIDFunc                   func(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	CreateFunc                    func(ctx context.Context, l *domain.Loan) error
	CloseFunc                     func(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*domain.Loan, error)
	UpdateDueDateFunc             func(ctx context.Context, loanID uuid.UUID, due time.Time) (*domain.Loan, error)
	DeleteFunc                    func(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListActiveItemsByBorrowerFunc func(ctx context.Context, borrowerID uuid.UUID, limit, offset int) ([]domain.Item, int, error)

	mu      sync.Mutex
	created []*domain.Loan
	closed  []uuid.UUID
}

func (m *loanRepoMock) FindActive(ctx context.Context, itemID, borrowerID uuid.UUID) (*domain.Loan, error) {
	if m.FindActiveFunc == nil {
		panic("loanRepoMock.FindActiveFunc: method is nil but FindActive was just called")
	}
	return m.FindActiveFunc(ctx, itemID, borrowerID)
}

func (m *loanRepoMock) GetByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	if m.GetByIDFunc == nil {
		panic("loanRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, loanID)
}

func (m *loanRepoMock) Create(ctx context.Context, l *domain.Loan) error {
	m.mu.Lock()
	m.created = append(m.created, l)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		panic("loanRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, l)
}

func (m *loanRepoMock) Close(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*domain.Loan, error) {
	m.mu.Lock()
	m.closed = append(m.closed, loanID)
	m.mu.Unlock()
	if m.CloseFunc == nil {
		panic("loanRepoMock.CloseFunc: method is nil but Close was just called")
	}
	return m.CloseFunc(ctx, loanID, returnedAt)
}

func (m *loanRepoMock) UpdateDueDate(ctx context.Context, loanID uuid.UUID, due time.Time) (*domain.Loan, error) {
	if m.UpdateDueDateFunc == nil {
		panic("loanRepoMock.UpdateDueDateFunc: method is nil but UpdateDueDate was just called")
	}
	return m.UpdateDueDateFunc(ctx, loanID, due)
}

func (m *loanRepoMock) Delete(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	if m.DeleteFunc == nil {
		panic("loanRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, loanID)
}

func (m *loanRepoMock) ListActiveItemsByBorrower(ctx context.Context, borrowerID uuid.UUID, limit, offset int) ([]domain.Item, int, error) {
	if m.ListActiveItemsByBorrowerFunc == nil {
		panic("loanRepoMock.ListActiveItemsByBorrowerFunc: method is nil but ListActiveItemsByBorrower was just called")
	}
	return m.ListActiveItemsByBorrowerFunc(ctx, borrowerID, limit, offset)
}

func (m *loanRepoMock) CreateCalls() []*domain.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func (m *loanRepoMock) CloseCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ---------------------------------------------------------------------------
// txManagerMock records whether the callback failed, i.e. whether a real
// transaction would have been rolled back.
// ---------------------------------------------------------------------------

type txManagerMock struct {
	calls      int
	rolledBack bool
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// fixedClock
// ---------------------------------------------------------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
