package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintain/internal/platform/metrics"
	"maintain/internal/platform/middleware"
	"maintain/pkg/requestcontext"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/v1.0/maintain/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Subject(r.Context())))
	})
}

func newRouter(validator middleware.JWTValidator, checks map[string]HealthCheck) http.Handler {
	return NewRouter(RouterConfig{
		AppName:      "maintain-api",
		Commit:       "abc123",
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:      metrics.New(prometheus.NewRegistry()),
		JWTValidator: validator,
		HealthChecks: checks,
	}, pingHandler{})
}

func get(h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := newRouter(nil, map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		})

		w := get(h, "/health")

		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "maintain-api", resp.App)
		assert.Equal(t, "abc123", resp.Commit)
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, "healthy", resp.Dependencies["database"])
	})

	t.Run("database down", func(t *testing.T) {
		h := newRouter(nil, map[string]HealthCheck{
			"database": func(context.Context) error { return errors.New("connection refused") },
		})

		w := get(h, "/health")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"unhealthy"`)
	})
}

func TestHealthAndMetricsSkipAuth(t *testing.T) {
	h := newRouter(middleware.NewHMACValidator("secret"), nil)

	assert.Equal(t, http.StatusOK, get(h, "/health").Code)

	// Populate the latency histogram before scraping.
	get(h, "/health")
	w := get(h, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "maintain_http_request_duration_seconds"))
}

func TestAPIRequiresToken(t *testing.T) {
	h := newRouter(middleware.NewHMACValidator("secret"), nil)

	w := get(h, "/v1.0/maintain/ping")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "caseworker-1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	w = get(h, "/v1.0/maintain/ping", "Authorization", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caseworker-1", w.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	h := newRouter(nil, nil)

	w := get(h, "/v1.0/maintain/ping", middleware.HeaderRequestID, "req-42")

	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
}
