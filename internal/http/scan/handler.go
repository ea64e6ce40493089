package scan

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

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/category"
	"github.com/TheXbomber/budgify-server/internal/http/session"
	"github.com/TheXbomber/budgify-server/internal/ocr"
)

// Scanner submits a receipt image to the scan server.
type Scanner interface {
	Scan(ctx context.Context, imageBase64 string) (*ocr.ScanResult, error)
}

// CategoryLister provides the user's pickable categories for matching the
// scanned category name.
type CategoryLister interface {
	ListVisible(ctx context.Context, uc auth.UserContext) ([]*category.Category, error)
}

type Handler struct {
	scanner    Scanner
	categories CategoryLister
}

func NewHandler(scanner Scanner, categories CategoryLister) *Handler {
	return &Handler{scanner: scanner, categories: categories}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.scan)
}

type scanRequest struct {
	Image string `json:"image"`
}

type draftResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
}

// scan runs a receipt image through the scan server and returns a
// sanitized transaction draft. Nothing is persisted; the client confirms
// the draft through the regular transaction endpoint.
func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Image == "" {
		http.Error(w, "image must not be empty", http.StatusUnprocessableEntity)
		return
	}

	res, err := h.scanner.Scan(r.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, ocr.ErrEmptyScan):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ocr.ErrScanFailed):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	categories, err := h.categories.ListVisible(r.Context(), uc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	draft := ocr.Validate(res, categories, time.Now())

	w.Header().Set("Content-Type", "application/json")

	resp := draftResponse{
		Amount:      draft.Amount,
		Description: draft.Description,
		Date:        draft.Date.Format(time.DateOnly),
		CategoryID:  draft.CategoryID,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
