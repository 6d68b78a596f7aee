package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

// Error codes returned in the "code" field of every error body.
const (
	CodeValidation      = "E004"
	CodeUnauthorized    = "E005"
	CodeNotAnAdmin      = "E006"
	CodeBookUnavailable = "E007"
	CodeDuplicateBorrow = "E008"
	CodeLoanNotFound    = "E009"
	CodeAlreadyReturned = "E010"
	CodeNotFound        = "E012"
	CodeInternal        = "E999"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError is the single place where domain failures become HTTP
// responses. Specific loan errors are matched before their generic kinds.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code: CodeValidation, Message: "Validation Error", Fields: fields,
		}})

	case errors.Is(err, domain.ErrDuplicateLoan):
		writeError(w, http.StatusConflict, CodeDuplicateBorrow, "You've Already Borrowed This Book")
	case errors.Is(err, domain.ErrItemUnavailable):
		writeError(w, http.StatusConflict, CodeBookUnavailable, "Book Not Available")
	case errors.Is(err, domain.ErrLoanNotFound):
		writeError(w, http.StatusNotFound, CodeLoanNotFound, "Borrower Not Found")
	case errors.Is(err, domain.ErrLoanAlreadyClosed):
		writeError(w, http.StatusBadRequest, CodeAlreadyReturned, "Borrower Already Returned The Book")
	case errors.Is(err, domain.ErrInvalidDueDate):
		writeError(w, http.StatusBadRequest, CodeValidation, "Due date must be in the future and at most one month ahead")
	case errors.Is(err, domain.ErrEmptyResult):
		writeError(w, http.StatusNotFound, CodeNotFound, "No loans match the filter")

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrPolicyViolation):
		writeError(w, http.StatusBadRequest, CodeValidation, "Validation Error")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "Not Found")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, CodeDuplicateBorrow, "Conflict")
	case errors.Is(err, domain.ErrResourceExhausted):
		writeError(w, http.StatusConflict, CodeBookUnavailable, "Book Not Available")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, CodeNotAnAdmin, "Unauthorized! You're not an admin")

	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.Bool("integrity", errors.Is(err, domain.ErrIntegrity)),
		)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
	}
}
