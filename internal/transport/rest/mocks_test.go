package rest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
	loansvc "github.com/heartmarshall/bookloan-backend/internal/service/loan"
	reportsvc "github.com/heartmarshall/bookloan-backend/internal/service/report"
)

type loanServiceMock struct {
	CheckoutFunc          func(ctx context.Context, input loansvc.CheckoutInput) (*domain.Loan, error)
	ReturnFunc            func(ctx context.Context, input loansvc.ReturnInput) (*domain.Loan, error)
	RescheduleDueDateFunc func(ctx context.Context, input loansvc.RescheduleInput) (*domain.Loan, error)
	DeleteLoanFunc        func(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListMyLoansFunc       func(ctx context.Context, input loansvc.ListMyLoansInput) (*loansvc.MyLoansResult, error)
}

func (m *loanServiceMock) Checkout(ctx context.Context, input loansvc.CheckoutInput) (*domain.Loan, error) {
	if m.CheckoutFunc == nil {
		panic("loanServiceMock.CheckoutFunc: method is nil but Checkout was just called")
	}
	return m.CheckoutFunc(ctx, input)
}

func (m *loanServiceMock) Return(ctx context.Context, input loansvc.ReturnInput) (*domain.Loan, error) {
	if m.ReturnFunc == nil {
		panic("loanServiceMock.ReturnFunc: method is nil but Return was just called")
	}
	return m.ReturnFunc(ctx, input)
}

func (m *loanServiceMock) RescheduleDueDate(ctx context.Context, input loansvc.RescheduleInput) (*domain.Loan, error) {
	if m.RescheduleDueDateFunc == nil {
		panic("loanServiceMock.RescheduleDueDateFunc: method is nil but RescheduleDueDate was just called")
	}
	return m.RescheduleDueDateFunc(ctx, input)
}

func (m *loanServiceMock) DeleteLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	if m.DeleteLoanFunc == nil {
		panic("loanServiceMock.DeleteLoanFunc: method is nil but DeleteLoan was just called")
	}
	return m.DeleteLoanFunc(ctx, loanID)
}

func (m *loanServiceMock) ListMyLoans(ctx context.Context, input loansvc.ListMyLoansInput) (*loansvc.MyLoansResult, error) {
	if m.ListMyLoansFunc == nil {
		panic("loanServiceMock.ListMyLoansFunc: method is nil but ListMyLoans was just called")
	}
	return m.ListMyLoansFunc(ctx, input)
}

type reportServiceMock struct {
	ListAllLoansFunc func(ctx context.Context, input reportsvc.ListInput) (*reportsvc.ListResult, error)
	ExportLoansFunc  func(ctx context.Context, filter domain.ReportFilter) (string, error)
}

func (m *reportServiceMock) ListAllLoans(ctx context.Context, input reportsvc.ListInput) (*reportsvc.ListResult, error) {
	if m.ListAllLoansFunc == nil {
		panic("reportServiceMock.ListAllLoansFunc: method is nil but ListAllLoans was just called")
	}
	return m.ListAllLoansFunc(ctx, input)
}

func (m *reportServiceMock) ExportLoans(ctx context.Context, filter domain.ReportFilter) (string, error) {
	if m.ExportLoansFunc == nil {
		panic("reportServiceMock.ExportLoansFunc: method is nil but ExportLoans was just called")
	}
	return m.ExportLoansFunc(ctx, filter)
}

// staticTokens maps bearer tokens to identities.
type staticTokens map[string]struct {
	id   uuid.UUID
	role string
}

func (s staticTokens) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	ident, ok := s[token]
	if !ok {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return ident.id, ident.role, nil
}

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

var errBoom = errors.New("boom")
