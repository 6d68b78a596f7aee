package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
	reportsvc "github.com/heartmarshall/bookloan-backend/internal/service/report"
)

type reportService interface {
	ListAllLoans(ctx context.Context, input reportsvc.ListInput) (*reportsvc.ListResult, error)
	ExportLoans(ctx context.Context, filter domain.ReportFilter) (string, error)
}

// ReportHandler serves the admin loan history and its CSV export.
type ReportHandler struct {
	reports reportService
	log     *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports reportService, log *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log.With("handler", "report")}
}

// List handles GET /?page=N&sinceDays=D&status=S.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := reportFilter(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	res, err := h.reports.ListAllLoans(r.Context(), reportsvc.ListInput{Filter: filter, Page: page})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Export handles GET /export?sinceDays=D&status=S and streams CSV.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := reportFilter(r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	text, err := h.reports.ExportLoans(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="loans.csv"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text) //nolint:errcheck
}
