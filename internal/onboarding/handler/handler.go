// Package handler exposes the onboarding wizard endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smarthire/internal/onboarding"
	"smarthire/internal/platform/middleware"
	jsonResponse "smarthire/internal/transport/http/json"
	"smarthire/internal/transport/http/shared"
)

// Service defines the interface for onboarding operations.
type Service interface {
	State(ctx context.Context, userID string) (*onboarding.State, error)
	Continue(ctx context.Context, userID string) (*onboarding.State, error)
	Skip(ctx context.Context, userID string) (*onboarding.State, error)
	CompleteStep(ctx context.Context, userID, stepID string) (*onboarding.State, error)
}

// Handler handles the /onboarding endpoints.
type Handler struct {
	onboarding Service
	logger     *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{onboarding: svc, logger: logger}
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/onboarding", h.HandleState)
	r.Post("/onboarding/continue", h.HandleContinue)
	r.Post("/onboarding/skip", h.HandleSkip)
	r.Post("/onboarding/steps/{id}/complete", h.HandleCompleteStep)
}

// HandleState implements GET /onboarding.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.onboarding.State(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, state)
}

// HandleContinue implements POST /onboarding/continue.
func (h *Handler) HandleContinue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.onboarding.Continue(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, state)
}

// HandleSkip implements POST /onboarding/skip.
func (h *Handler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.onboarding.Skip(ctx, middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, state)
}

// HandleCompleteStep implements POST /onboarding/steps/{id}/complete.
func (h *Handler) HandleCompleteStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.onboarding.CompleteStep(ctx, middleware.GetUserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, state)
}
