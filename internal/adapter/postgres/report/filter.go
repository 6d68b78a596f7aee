package report

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var viewColumns = []string{
	"l.id",
	"l.borrowed_at",
	"l.returned_at",
	"l.due_date",
	"i.id AS item_id",
	"i.title AS item_title",
	"i.author AS item_author",
	"i.isbn AS item_isbn",
	"i.quantity AS item_quantity",
	"i.shelf_location AS item_shelf_location",
	"u.id AS user_id",
	"u.name AS user_name",
	"u.email AS user_email",
	"u.role AS user_role",
}

// predicate composes the WHERE parts for c. Every value is bound as a
// parameter. An empty result means no filtering.
func predicate(c domain.ReportCriteria) sq.And {
	var where sq.And

	if c.BorrowedAfter != nil {
		where = append(where, sq.Gt{"l.borrowed_at": *c.BorrowedAfter})
	}

	switch c.Status {
	case domain.ReportStatusOverdue:
		where = append(where,
			sq.NotEq{"l.returned_at": nil},
			sq.Expr("l.returned_at > l.due_date"),
		)
	case domain.ReportStatusPastDue:
		where = append(where,
			sq.Eq{"l.returned_at": nil},
			sq.Lt{"l.due_date": c.AsOf},
		)
	}

	return where
}

// rowsQuery selects loan views ordered by checkout time. page == nil selects
// every matching row.
func rowsQuery(c domain.ReportCriteria, page *domain.Page) sq.SelectBuilder {
	b := psql.Select(viewColumns...).
		From("loans l").
		LeftJoin("items i ON i.id = l.item_id").
		LeftJoin("users u ON u.id = l.borrower_id").
		OrderBy("l.borrowed_at", "l.id")

	if where := predicate(c); len(where) > 0 {
		b = b.Where(where)
	}
	if page != nil {
		b = b.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
	}
	return b
}

// countQuery counts the rows rowsQuery would return without a page.
func countQuery(c domain.ReportCriteria) sq.SelectBuilder {
	b := psql.Select("COUNT(*)").From("loans l")
	if where := predicate(c); len(where) > 0 {
		b = b.Where(where)
	}
	return b
}
