package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus selects which loans a report includes.
type ReportStatus string

const (
	// ReportStatusAll applies no status predicate.
	ReportStatusAll ReportStatus = "ALL"
	// ReportStatusOverdue matches loans returned after their due date.
	// Loans still out past their due date are not included; see ReportStatusPastDue.
	ReportStatusOverdue ReportStatus = "OVERDUE"
	// ReportStatusPastDue matches active loans whose due date has passed.
	ReportStatusPastDue ReportStatus = "PAST_DUE"
)

func (s ReportStatus) String() string { return string(s) }

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusAll, ReportStatusOverdue, ReportStatusPastDue:
		return true
	}
	return false
}

// ReportFilter is the caller-facing report filter. Every field is optional;
// supplied fields are combined with AND.
type ReportFilter struct {
	// SinceDays keeps only loans borrowed within the last N days.
	SinceDays *int
	// Status defaults to ReportStatusAll when empty.
	Status ReportStatus
}

// ReportCriteria is a ReportFilter resolved against a reference instant, ready
// for the query layer.
type ReportCriteria struct {
	BorrowedAfter *time.Time
	Status        ReportStatus
	AsOf          time.Time
}

// Criteria resolves the filter relative to now.
func (f ReportFilter) Criteria(now time.Time) ReportCriteria {
	c := ReportCriteria{Status: f.Status, AsOf: now}
	if c.Status == "" {
		c.Status = ReportStatusAll
	}
	if f.SinceDays != nil {
		after := now.AddDate(0, 0, -*f.SinceDays)
		c.BorrowedAfter = &after
	}
	return c
}

// Paging bounds. Together they keep Page.Offset well inside int64.
const (
	MaxPageNumber = 100_000
	MaxPageSize   = 1_000
)

// Page is a 1-based pagination window.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// ItemSummary is the item part of a LoanView.
type ItemSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Quantity      int       `json:"quantity"`
	ShelfLocation string    `json:"shelfLocation"`
}

// BorrowerSummary is the borrower part of a LoanView.
type BorrowerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// LoanView is a loan with its item and borrower nested beside it. Item or
// Borrower is nil when the referenced record no longer exists.
type LoanView struct {
	ID         uuid.UUID        `json:"id"`
	BorrowedAt time.Time        `json:"borrowedAt"`
	ReturnedAt *time.Time       `json:"returnedAt"`
	DueDate    time.Time        `json:"dueDate"`
	Item       *ItemSummary     `json:"book"`
	Borrower   *BorrowerSummary `json:"user"`
}

// LoanRecord is the flat shape of one exported report row.
type LoanRecord struct {
	ID            string
	BorrowedAt    string
	ReturnedAt    string
	DueDate       string
	ItemTitle     string
	ItemAuthor    string
	BorrowerName  string
	BorrowerEmail string
}

// Record flattens the view into an export row. Timestamps are RFC 3339 in UTC;
// missing values become empty strings.
func (v LoanView) Record() LoanRecord {
	rec := LoanRecord{
		ID:         v.ID.String(),
		BorrowedAt: v.BorrowedAt.UTC().Format(time.RFC3339),
		DueDate:    v.DueDate.UTC().Format(time.RFC3339),
	}
	if v.ReturnedAt != nil {
		rec.ReturnedAt = v.ReturnedAt.UTC().Format(time.RFC3339)
	}
	if v.Item != nil {
		rec.ItemTitle = v.Item.Title
		rec.ItemAuthor = v.Item.Author
	}
	if v.Borrower != nil {
		rec.BorrowerName = v.Borrower.Name
		rec.BorrowerEmail = v.Borrower.Email
	}
	return rec
}
