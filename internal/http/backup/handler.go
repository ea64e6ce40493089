package backup

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheXbomber/budgify-server/internal/backup"
	"github.com/TheXbomber/budgify-server/internal/http/session"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.backup)
	r.Post("/restore", h.restore)
}

func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	if err := h.svc.Backup(r.Context(), uc); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// restore replaces all of the user's data with the uploaded snapshot.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	if err := h.svc.Restore(r.Context(), uc); err != nil {
		if errors.Is(err, backup.ErrNoBackup) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
