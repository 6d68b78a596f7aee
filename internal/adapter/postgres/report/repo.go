// Package report runs the filtered loan history queries behind the admin
// listing and the CSV export.
package report

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"golang.org/x/sync/errgroup"

	postgres "github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Repo provides read-only loan report queries.
type Repo struct {
	db postgres.Querier
}

// New creates a new report repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Query returns the loans matching c together with the total number of
// matches ignoring page. With page == nil every match is returned and the
// total is the row count, so no COUNT query runs.
//
// Outside a transaction the rows and the count run concurrently on separate
// connections, so under concurrent writes they may reflect slightly different
// snapshots. Inside a transaction they run sequentially on it.
func (r *Repo) Query(ctx context.Context, c domain.ReportCriteria, page *domain.Page) ([]domain.LoanView, int, error) {
	rowsSQL, rowsArgs, err := rowsQuery(c, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build report rows query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	if page == nil {
		var rows []viewRow
		if err := pgxscan.Select(ctx, q, &rows, rowsSQL, rowsArgs...); err != nil {
			return nil, 0, fmt.Errorf("select report rows: %w", err)
		}
		return toViews(rows), len(rows), nil
	}

	countSQL, countArgs, err := countQuery(c).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build report count query: %w", err)
	}

	var (
		rows  []viewRow
		total int
	)

	selectRows := func(ctx context.Context) error {
		if err := pgxscan.Select(ctx, q, &rows, rowsSQL, rowsArgs...); err != nil {
			return fmt.Errorf("select report rows: %w", err)
		}
		return nil
	}
	countRows := func(ctx context.Context) error {
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count report rows: %w", err)
		}
		return nil
	}

	if postgres.HasTx(ctx) {
		// A pgx.Tx is a single connection and cannot run queries concurrently.
		if err := selectRows(ctx); err != nil {
			return nil, 0, err
		}
		if err := countRows(ctx); err != nil {
			return nil, 0, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return selectRows(gctx) })
		g.Go(func() error { return countRows(gctx) })
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
	}

	return toViews(rows), total, nil
}

func toViews(rows []viewRow) []domain.LoanView {
	views := make([]domain.LoanView, len(rows))
	for i, row := range rows {
		views[i] = row.toDomain()
	}
	return views
}
