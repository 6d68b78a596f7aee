package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/bookloan-backend/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Health  *HealthHandler
	Loans   *LoanHandler
	Reports *ReportHandler

	// Auth rejects requests without a valid bearer token.
	Auth middleware.Middleware
	// RateLimit is optional.
	RateLimit middleware.Middleware

	Log *slog.Logger
}

// NewRouter builds the HTTP routing tree. Probes are public; everything under
// /api/borrower requires a token, and listing, export, reschedule and delete
// additionally require the admin role.
func NewRouter(d RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.Use(
		middleware.RequestID,
		mux.MiddlewareFunc(middleware.Logger(d.Log)),
		mux.MiddlewareFunc(middleware.Recovery(d.Log)),
	)

	r.HandleFunc("/live", d.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", d.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", d.Health.Health).Methods(http.MethodGet)

	// Authenticate first so the limiter keys on the borrower, not the address.
	protected := []middleware.Middleware{d.Auth}
	if d.RateLimit != nil {
		protected = append(protected, d.RateLimit)
	}
	api := r.PathPrefix("/api/borrower").Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.Chain(protected...)))

	api.HandleFunc("/check-out/{itemId}", d.Loans.Checkout).Methods(http.MethodPost)
	api.HandleFunc("/return/{itemId}", d.Loans.Return).Methods(http.MethodPost)
	api.HandleFunc("/my-borrows", d.Loans.MyBorrows).Methods(http.MethodGet)

	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }
	api.Handle("", admin(d.Reports.List)).Methods(http.MethodGet)
	api.Handle("/", admin(d.Reports.List)).Methods(http.MethodGet)
	api.Handle("/export", admin(d.Reports.Export)).Methods(http.MethodGet)
	api.Handle("/{id}", admin(d.Loans.Reschedule)).Methods(http.MethodPut)
	api.Handle("/{id}", admin(d.Loans.Delete)).Methods(http.MethodDelete)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeNotFound, "Method Not Allowed")
}
