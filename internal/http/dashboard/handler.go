package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheXbomber/budgify-server/internal/composer"
	"github.com/TheXbomber/budgify-server/internal/http/session"
)

type Handler struct {
	composer *composer.Composer
}

func NewHandler(c *composer.Composer) *Handler {
	return &Handler{composer: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/stream", h.stream)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	snap, err := h.composer.Snapshot(r.Context(), uc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(snap)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// stream pushes a snapshot as a server-sent event whenever the user's data
// changes, starting with the current state. A slow reader only ever misses
// intermediate snapshots, never the latest.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	uc, _ := session.FromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	snapshots, cancel := h.composer.Subscribe(uc)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-snapshots:
			payload, err := json.Marshal(toResponse(snap))
			if err != nil {
				slog.Error("failed to encode snapshot", "error", err)
				continue
			}

			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}

			if _, err := w.Write(payload); err != nil {
				return
			}

			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}

			flusher.Flush()
		}
	}
}
