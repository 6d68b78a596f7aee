package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// pathUUID reads a UUID path variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryInt reads an optional positive integer query parameter. Absent means 0.
func queryInt(r *http.Request, name string, min int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, domain.NewValidationError(name, fmt.Sprintf("must be an integer >= %d", min))
	}
	return v, nil
}

// reportFilter reads sinceDays and status from the query string.
func reportFilter(r *http.Request) (domain.ReportFilter, error) {
	var f domain.ReportFilter

	if r.URL.Query().Has("sinceDays") {
		days, err := queryInt(r, "sinceDays", 0)
		if err != nil {
			return f, err
		}
		f.SinceDays = &days
	}
	f.Status = domain.ReportStatus(r.URL.Query().Get("status"))
	return f, nil
}
