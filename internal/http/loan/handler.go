package loan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/completion"
	"github.com/TheXbomber/budgify-server/internal/http/session"
	"github.com/TheXbomber/budgify-server/internal/loan"
)

// Completer settles a loan into its synthesized transaction and XP award.
type Completer interface {
	CompleteLoan(ctx context.Context, uc auth.UserContext, loanID, accountID uuid.UUID) (*completion.Result, error)
}

type Handler struct {
	svc       *loan.Service
	accounts  *account.Service
	completer Completer
}

func NewHandler(svc *loan.Service, accounts *account.Service, completer Completer) *Handler {
	return &Handler{svc: svc, accounts: accounts, completer: completer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/complete", h.complete)
}

type createLoanRequest struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Type        loan.Type       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Type != loan.TypeDebt && req.Type != loan.TypeCredit {
		http.Error(w, "invalid type", http.StatusUnprocessableEntity)
		return
	}

	if req.Amount.IsNegative() {
		http.Error(w, "amount must not be negative", http.StatusUnprocessableEntity)
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusUnprocessableEntity)
		return
	}

	params := loan.CreateParams{
		AccountID:   req.AccountID,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		StartDate:   start,
	}

	if req.EndDate != nil {
		end, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusUnprocessableEntity)
			return
		}

		if end.Before(start) {
			http.Error(w, "end_date must not precede start_date", http.StatusUnprocessableEntity)
			return
		}

		params.EndDate = &end
	}

	// Extending a credit moves money out on creation, so the account has
	// to cover it up front.
	if req.Type == loan.TypeCredit {
		acc, err := h.accounts.Get(r.Context(), uc, req.AccountID)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				http.Error(w, "account not found", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		if acc.Amount.LessThan(req.Amount) {
			http.Error(w, "insufficient funds on account", http.StatusUnprocessableEntity)
			return
		}
	}

	res, err := h.svc.Create(r.Context(), uc, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toCreateResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	loans, err := h.svc.List(r.Context(), uc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(loans)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	l, err := h.svc.Get(r.Context(), uc, id)
	if err != nil {
		if errors.Is(err, loan.ErrNotFound) {
			http.Error(w, "loan not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateLoanRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	ClearEnd    bool             `json:"clear_end,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount != nil && req.Amount.IsNegative() {
		http.Error(w, "amount must not be negative", http.StatusUnprocessableEntity)
		return
	}

	params := loan.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		ClearEnd:    req.ClearEnd,
	}

	if req.StartDate != nil {
		start, err := time.Parse(time.DateOnly, *req.StartDate)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusUnprocessableEntity)
			return
		}

		params.StartDate = &start
	}

	if req.EndDate != nil {
		end, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusUnprocessableEntity)
			return
		}

		params.EndDate = &end
	}

	l, err := h.svc.Update(r.Context(), uc, id, params)
	if err != nil {
		switch {
		case errors.Is(err, loan.ErrNotFound):
			http.Error(w, "loan not found", http.StatusNotFound)
		case errors.Is(err, loan.ErrCompleted):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), uc, id); err != nil {
		if errors.Is(err, loan.ErrNotFound) {
			http.Error(w, "loan not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type completeLoanRequest struct {
	AccountID uuid.UUID `json:"account_id"`
}

// complete settles the loan on the chosen account. Repaying a debt moves
// money out, so the account has to cover the loan amount; the funds check
// happens here so the synthesizer itself stays check-free.
func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req completeLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Get(r.Context(), uc, id)
	if err != nil {
		if errors.Is(err, loan.ErrNotFound) {
			http.Error(w, "loan not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if l.Type == loan.TypeDebt {
		acc, err := h.accounts.Get(r.Context(), uc, req.AccountID)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				http.Error(w, "account not found", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		if acc.Amount.LessThan(l.Amount) {
			http.Error(w, "insufficient funds on account", http.StatusUnprocessableEntity)
			return
		}
	}

	res, err := h.completer.CompleteLoan(r.Context(), uc, id, req.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, completion.ErrAlreadyCompleted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, loan.ErrNotFound):
			http.Error(w, "loan not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCompletionResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
