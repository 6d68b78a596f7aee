// Package jobs holds background work triggered by the scheduler or by
// one-shot commands.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/bookloan-backend/internal/config"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

const (
	exportJobName = "ExportLoans"
	exportTimeout = 5 * time.Minute
	fileLayout    = "20060102-150405"
)

type exporter interface {
	ExportLoans(ctx context.Context, filter domain.ReportFilter) (string, error)
}

// ExportJob writes the loan history of the last SinceDays days to a CSV file
// in Dir.
type ExportJob struct {
	reports   exporter
	dir       string
	sinceDays int
	now       func() time.Time
	log       *slog.Logger
}

// NewExportJob creates an ExportJob from the reports settings.
func NewExportJob(log *slog.Logger, reports exporter, cfg config.ReportsConfig) *ExportJob {
	return &ExportJob{
		reports:   reports,
		dir:       cfg.ExportDir,
		sinceDays: cfg.ExportSinceDays,
		now:       time.Now,
		log:       log.With("job", exportJobName),
	}
}

// Run performs one export and returns the path of the written file. An empty
// history is not an error: nothing is written and the path is empty.
func (j *ExportJob) Run(ctx context.Context) (string, error) {
	since := j.sinceDays
	text, err := j.reports.ExportLoans(ctx, domain.ReportFilter{SinceDays: &since})
	if errors.Is(err, domain.ErrEmptyResult) {
		j.log.InfoContext(ctx, "no loans to export", slog.Int("since_days", since))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("export loans: %w", err)
	}

	name := "loans-" + j.now().UTC().Format(fileLayout) + ".csv"
	path, err := writeFileAtomic(j.dir, name, []byte(text))
	if err != nil {
		return "", err
	}

	j.log.InfoContext(ctx, "export written", slog.String("path", path), slog.Int("bytes", len(text)))
	return path, nil
}

// Func adapts Run to a cron callback. Each invocation gets its own timeout
// and a panic in one run does not take down the scheduler.
func (j *ExportJob) Func(ctx context.Context) func() {
	return func() {
		runWithRecovery(j.log, exportJobName, func() {
			ctx, cancel := context.WithTimeout(ctx, exportTimeout)
			defer cancel()

			if _, err := j.Run(ctx); err != nil {
				j.log.ErrorContext(ctx, "export failed", slog.String("error", err.Error()))
			}
		})
	}
}

// writeFileAtomic writes data to dir/name through a temp file so readers
// never observe a partial export.
func writeFileAtomic(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
