package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/inventory"
	loanrepo "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/loan"
	reportrepo "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/report"
	"github.com/heartmarshall/bookloan-backend/internal/auth"
	"github.com/heartmarshall/bookloan-backend/internal/config"
	"github.com/heartmarshall/bookloan-backend/internal/jobs"
	"github.com/heartmarshall/bookloan-backend/internal/scheduler"
	"github.com/heartmarshall/bookloan-backend/internal/service/loan"
	"github.com/heartmarshall/bookloan-backend/internal/service/report"
	"github.com/heartmarshall/bookloan-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookloan-backend/internal/transport/rest"
)

// Run is the application entry point. It wires the database, services and
// HTTP server, optionally starts the export scheduler, and blocks until ctx
// is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.MigrateUp(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	h := newHandler(cfg, pool, logger)
	defer h.limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      h.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Scheduled export
	var sched *scheduler.Scheduler
	if cfg.Reports.ExportEnabled {
		sched = scheduler.New(logger)
		job := jobs.NewExportJob(logger, h.reports, cfg.Reports)
		if err := sched.Register("ExportLoans", cfg.Reports.ExportSchedule, job.Func(ctx)); err != nil {
			return err
		}
		sched.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown", slog.String("error", err.Error()))
		}
	}

	logger.Info("application stopped")
	return nil
}

type handler struct {
	router  http.Handler
	reports *report.Service
	limiter *middleware.RateLimiter
}

// newHandler builds services and the HTTP routing tree over pool. The caller
// stops the returned limiter.
func newHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *handler {
	txm := postgres.NewTxManager(pool)
	loanService := loan.NewService(logger, inventory.New(pool), loanrepo.New(pool), txm, cfg.Loans.PageSize)
	reportService := report.NewService(logger, reportrepo.New(pool), cfg.Reports.PageSize)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	router := rest.NewRouter(rest.RouterDeps{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Loans:     rest.NewLoanHandler(loanService, logger),
		Reports:   rest.NewReportHandler(reportService, logger),
		Auth:      middleware.Auth(jwtManager),
		RateLimit: limiter.Limit(cfg.RateLimit.RequestsPerMinute),
		Log:       logger,
	})

	return &handler{router: router, reports: reportService, limiter: limiter}
}
