// Package httptransport assembles the public HTTP surface: middleware
// stack, public auth routes, authenticated recruitment and onboarding
// routes, health probes, and Prometheus metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "smarthire/internal/auth/handler"
	hiringhandler "smarthire/internal/hiring/handler"
	onboardinghandler "smarthire/internal/onboarding/handler"
	"smarthire/internal/platform/health"
	"smarthire/internal/platform/middleware"
)

// Deps carries the wired handlers and the JWT validator that guards the
// authenticated routes.
type Deps struct {
	Auth       *authhandler.Handler
	Hiring     *hiringhandler.Handler
	Onboarding *onboardinghandler.Handler
	Health     *health.Handler
	Validator  middleware.JWTValidator
	Logger     *slog.Logger
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.ClientInfo)
	r.Use(middleware.Timeout(30 * time.Second))

	// Probes and metrics skip the JSON content-type requirement.
	deps.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		deps.Auth.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Hiring.Register(r)
		deps.Onboarding.Register(r)
	})

	return r
}
