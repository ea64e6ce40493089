package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

// CategoryBootstrapper seeds the reserved settlement categories on login.
type CategoryBootstrapper interface {
	EnsureSystem(ctx context.Context, uc auth.UserContext) error
}

type Handler struct {
	svc        *auth.Service
	categories CategoryBootstrapper
}

func NewHandler(svc *auth.Service, categories CategoryBootstrapper) *Handler {
	return &Handler{svc: svc, categories: categories}
}

// PublicRoutes mounts the endpoints that do not require a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// Routes mounts the authenticated security-settings endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.security)
	r.Put("/pin", h.setPIN)
	r.Post("/pin/verify", h.verifyPIN)
	r.Put("/biometric", h.setBiometric)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusUnprocessableEntity)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]string{"id": u.ID.String(), "email": u.Email}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	// Every login guarantees the settlement categories exist; without
	// them completions degrade to uncategorized transactions.
	if err := h.categories.EnsureSystem(r.Context(), auth.UserContext{UserID: u.ID}); err != nil {
		slog.Error("failed to ensure system categories", "user", u.ID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"token": token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) security(w http.ResponseWriter, r *http.Request) {
	uc, _ := FromContext(r.Context())

	sec, err := h.svc.Security(r.Context(), uc)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := map[string]bool{
		"pin_set":           sec.PINHash != nil,
		"biometric_enabled": sec.BiometricEnabled,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (h *Handler) setPIN(w http.ResponseWriter, r *http.Request) {
	uc, _ := FromContext(r.Context())

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.PIN) != 5 {
		http.Error(w, "pin must be 5 digits", http.StatusUnprocessableEntity)
		return
	}

	if err := h.svc.SetPIN(r.Context(), uc, req.PIN); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) verifyPIN(w http.ResponseWriter, r *http.Request) {
	uc, _ := FromContext(r.Context())

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.svc.VerifyPIN(r.Context(), uc, req.PIN)
	if err != nil {
		if errors.Is(err, auth.ErrPINNotSet) {
			http.Error(w, "pin not set", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]bool{"valid": ok}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type biometricRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) setBiometric(w http.ResponseWriter, r *http.Request) {
	uc, _ := FromContext(r.Context())

	var req biometricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetBiometric(r.Context(), uc, req.Enabled); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
