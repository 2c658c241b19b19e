// Package httptransport assembles the application router: shared middleware,
// operational endpoints, and the authenticated API handlers.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"maintain/internal/platform/metrics"
	"maintain/internal/platform/middleware"
	"maintain/pkg/platform/httputil"
)

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries what the router needs beyond the API handlers.
type RouterConfig struct {
	AppName      string
	Commit       string
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	JWTValidator middleware.JWTValidator
	HealthChecks map[string]HealthCheck
}

// HealthResponse is the /health body.
type HealthResponse struct {
	App          string            `json:"app"`
	Commit       string            `json:"commit"`
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewRouter wires every endpoint. /health and /metrics stay outside
// authentication.
func NewRouter(cfg RouterConfig, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/health", healthHandler(cfg))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.JWTValidator, cfg.Logger))
		for _, h := range handlers {
			h.Register(r)
		}
	})
	return r
}

func healthHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			App:          cfg.AppName,
			Commit:       cfg.Commit,
			Status:       "OK",
			Dependencies: make(map[string]string, len(cfg.HealthChecks)),
		}
		status := http.StatusOK
		for name, check := range cfg.HealthChecks {
			if err := check(r.Context()); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "health check failed", "dependency", name, "error", err)
				resp.Dependencies[name] = "unhealthy"
				resp.Status = "BAD"
				status = http.StatusInternalServerError
				continue
			}
			resp.Dependencies[name] = "healthy"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
