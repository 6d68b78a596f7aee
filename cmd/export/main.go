// Command export writes the loan history as CSV once and exits. It reads the
// same configuration as the server.
//
// Usage:
//
//	export [--since-days=N] [--status=ALL|OVERDUE|PAST_DUE] [--out=loans.csv]
//
// Without --out the CSV goes to stdout. Exit codes: 0 = success (including an
// empty history, reported on stderr), 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	reportrepo "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/report"
	"github.com/heartmarshall/bookloan-backend/internal/app"
	"github.com/heartmarshall/bookloan-backend/internal/config"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
	"github.com/heartmarshall/bookloan-backend/internal/service/report"
)

func main() {
	sinceDays := flag.Int("since-days", -1, "only loans borrowed within the last N days (negative = all)")
	status := flag.String("status", "ALL", "ALL, OVERDUE or PAST_DUE")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	filter := domain.ReportFilter{Status: domain.ReportStatus(*status)}
	if *sinceDays >= 0 {
		filter.SinceDays = sinceDays
	}

	svc := report.NewService(logger, reportrepo.New(pool), cfg.Reports.PageSize)
	text, err := svc.ExportLoans(ctx, filter)
	if errors.Is(err, domain.ErrEmptyResult) {
		fmt.Fprintln(os.Stderr, "no loans match the filter")
		return
	}
	if err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *out == "" {
		fmt.Println(text)
		return
	}
	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		logger.Error("write export", slog.String("path", *out), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("export written", slog.String("path", *out))
}
