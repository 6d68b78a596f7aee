// Package report serves the administrative loan history: paginated listing
// and full delimited-text export.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// DefaultPageSize is used when NewService receives a non-positive page size.
const DefaultPageSize = 10

type reportRepo interface {
	Query(ctx context.Context, c domain.ReportCriteria, page *domain.Page) ([]domain.LoanView, int, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service builds loan reports. It never modifies data.
type Service struct {
	reports  reportRepo
	clock    clock
	pageSize int
	log      *slog.Logger
}

// NewService creates a new report service.
func NewService(log *slog.Logger, reports reportRepo, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		reports:  reports,
		clock:    systemClock{},
		pageSize: pageSize,
		log:      log.With("service", "report"),
	}
}

// PageSize returns the number of loans per listing page.
func (s *Service) PageSize() int { return s.pageSize }

func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}
