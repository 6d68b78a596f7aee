package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookloan-backend/internal/domain"
	loansvc "github.com/heartmarshall/bookloan-backend/internal/service/loan"
	"github.com/heartmarshall/bookloan-backend/pkg/ctxutil"
)

type loanService interface {
	Checkout(ctx context.Context, input loansvc.CheckoutInput) (*domain.Loan, error)
	Return(ctx context.Context, input loansvc.ReturnInput) (*domain.Loan, error)
	RescheduleDueDate(ctx context.Context, input loansvc.RescheduleInput) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListMyLoans(ctx context.Context, input loansvc.ListMyLoansInput) (*loansvc.MyLoansResult, error)
}

// LoanHandler serves the borrower-facing loan endpoints and the admin
// reschedule and delete endpoints.
type LoanHandler struct {
	loans loanService
	log   *slog.Logger
}

// NewLoanHandler creates a LoanHandler.
func NewLoanHandler(loans loanService, log *slog.Logger) *LoanHandler {
	return &LoanHandler{loans: loans, log: log.With("handler", "loan")}
}

type dueDateRequest struct {
	DueDate time.Time `json:"dueDate"`
}

// Checkout handles POST /check-out/{itemId}.
func (h *LoanHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	borrowerID, ok := h.borrower(w, r)
	if !ok {
		return
	}
	itemID, err := pathUUID(r, "itemId")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var req dueDateRequest
	if !h.decode(w, r, &req) {
		return
	}

	l, err := h.loans.Checkout(r.Context(), loansvc.CheckoutInput{
		ItemID:     itemID,
		BorrowerID: borrowerID,
		DueDate:    req.DueDate,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// Return handles POST /return/{itemId}.
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	borrowerID, ok := h.borrower(w, r)
	if !ok {
		return
	}
	itemID, err := pathUUID(r, "itemId")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	l, err := h.loans.Return(r.Context(), loansvc.ReturnInput{ItemID: itemID, BorrowerID: borrowerID})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// MyBorrows handles GET /my-borrows?page=N.
func (h *LoanHandler) MyBorrows(w http.ResponseWriter, r *http.Request) {
	borrowerID, ok := h.borrower(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	res, err := h.loans.ListMyLoans(r.Context(), loansvc.ListMyLoansInput{BorrowerID: borrowerID, Page: page})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Reschedule handles PUT /{id}.
func (h *LoanHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var req dueDateRequest
	if !h.decode(w, r, &req) {
		return
	}

	l, err := h.loans.RescheduleDueDate(r.Context(), loansvc.RescheduleInput{LoanID: loanID, DueDate: req.DueDate})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Delete handles DELETE /{id}.
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	l, err := h.loans.DeleteLoan(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LoanHandler) borrower(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

func (h *LoanHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDomainError(w, r, h.log, domain.NewValidationError("body", "invalid JSON"))
		return false
	}
	return true
}
