package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// CronParser parses export schedules. Schedules carry a leading seconds field.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Loans.PageSize <= 0 || c.Loans.PageSize > domain.MaxPageSize {
		return fmt.Errorf("loans.page_size must be in 1..%d (got %d)", domain.MaxPageSize, c.Loans.PageSize)
	}

	if err := c.Reports.validate(); err != nil {
		return fmt.Errorf("reports: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (r *ReportsConfig) validate() error {
	if r.PageSize <= 0 || r.PageSize > domain.MaxPageSize {
		return fmt.Errorf("page_size must be in 1..%d (got %d)", domain.MaxPageSize, r.PageSize)
	}
	if !r.ExportEnabled {
		return nil
	}
	if r.ExportDir == "" {
		return fmt.Errorf("export_dir is required when export is enabled")
	}
	if r.ExportSinceDays < 0 {
		return fmt.Errorf("export_since_days must be >= 0 (got %d)", r.ExportSinceDays)
	}
	if _, err := CronParser.Parse(r.ExportSchedule); err != nil {
		return fmt.Errorf("export_schedule %q: %w", r.ExportSchedule, err)
	}
	return nil
}
