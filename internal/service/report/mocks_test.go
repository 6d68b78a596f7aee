package report

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

type queryCall struct {
	Criteria domain.ReportCriteria
	Page     *domain.Page
}

type reportRepoMock struct {
	QueryFunc func(ctx context.Context, c domain.ReportCriteria, page *domain.Page) ([]domain.LoanView, int, error)

	mu    sync.Mutex
	calls []queryCall
}

func (m *reportRepoMock) Query(ctx context.Context, c domain.ReportCriteria, page *domain.Page) ([]domain.LoanView, int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, queryCall{Criteria: c, Page: page})
	m.mu.Unlock()
	return m.QueryFunc(ctx, c, page)
}

func (m *reportRepoMock) QueryCalls() []queryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]queryCall(nil), m.calls...)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
