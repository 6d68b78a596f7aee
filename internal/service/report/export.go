package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// ExportLoans renders every loan matching the filter as delimited text with a
// header row. Returns domain.ErrEmptyResult when nothing matches.
func (s *Service) ExportLoans(ctx context.Context, filter domain.ReportFilter) (string, error) {
	if errs := validateFilter(filter); len(errs) > 0 {
		return "", &domain.ValidationError{Errors: errs}
	}

	criteria := filter.Criteria(s.now())
	views, total, err := s.reports.Query(ctx, criteria, nil)
	if err != nil {
		return "", fmt.Errorf("query loans: %w", err)
	}
	if total == 0 {
		return "", domain.ErrEmptyResult
	}

	records := make([]domain.LoanRecord, len(views))
	for i, v := range views {
		records[i] = v.Record()
	}

	s.log.InfoContext(ctx, "loans exported",
		slog.Int("rows", len(records)),
		slog.String("status", criteria.Status.String()),
	)

	return ToDelimitedText(records), nil
}
