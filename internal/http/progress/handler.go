package progress

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheXbomber/budgify-server/internal/http/session"
	"github.com/TheXbomber/budgify-server/internal/leveling"
	"github.com/TheXbomber/budgify-server/internal/progress"
)

type Handler struct {
	svc *progress.Service
}

func NewHandler(svc *progress.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/themes", h.themes)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	status, err := h.svc.Get(r.Context(), uc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toStatusResponse(status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// themes lists the full theme table with per-user unlock state.
func (h *Handler) themes(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	status, err := h.svc.Get(r.Context(), uc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	unlocked := make(map[string]bool, len(status.UnlockedThemes))
	for _, name := range status.UnlockedThemes {
		unlocked[name] = true
	}

	all := leveling.Themes()
	resp := make([]themeResponse, len(all))

	for i, t := range all {
		resp[i] = themeResponse{
			Name:        t.Name,
			DisplayName: t.DisplayName,
			UnlockLevel: t.UnlockLevel,
			Unlocked:    unlocked[t.Name],
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
