package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/bookloan-backend/migrations"
)

// OpenMigrationDB opens a database/sql handle for goose, which does not work
// with pgxpool directly. The caller closes it.
func OpenMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping migration db: %w", err)
	}
	return db, nil
}

// NewMigrationProvider returns a goose provider over the embedded migrations.
// The provider handles $$-delimited bodies correctly, unlike the legacy goose.Up.
func NewMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}

// MigrateUp applies all pending migrations to the database at dsn.
func MigrateUp(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := OpenMigrationDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := NewMigrationProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	if log != nil {
		for _, r := range results {
			log.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration),
			)
		}
	}
	return nil
}
