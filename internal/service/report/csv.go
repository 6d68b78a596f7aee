package report

import (
	"strings"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

var header = []string{
	"Loan ID",
	"Borrowed At",
	"Returned At",
	"Due Date",
	"Book Title",
	"Book Author",
	"User Name",
	"User Email",
}

// ToDelimitedText renders records as comma-separated lines preceded by a
// header line. Lines are joined with "\n" without a trailing newline. Empty
// input yields an empty string with no header.
func ToDelimitedText(records []domain.LoanRecord) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	writeLine(&b, header)
	for _, r := range records {
		b.WriteByte('\n')
		writeLine(&b, []string{
			r.ID,
			r.BorrowedAt,
			r.ReturnedAt,
			r.DueDate,
			r.ItemTitle,
			r.ItemAuthor,
			r.BorrowerName,
			r.BorrowerEmail,
		})
	}
	return b.String()
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(f))
	}
}

// escapeField quotes values containing a comma or a double quote. Other
// values, including ones with line breaks, are written as is.
func escapeField(v string) string {
	if !strings.ContainsAny(v, `,"`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
