package transport

import (
	"context"
	"net/http"
	"time"

	"inventory-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// HealthCheck reports dependency health. A "status" entry other than "up"
// marks the service as not ready.
type HealthCheck func(ctx context.Context) map[string]string

// HealthHandler answers liveness and readiness probes
type HealthHandler struct {
	check HealthCheck
}

func NewHealthHandler(check HealthCheck) *HealthHandler {
	return &HealthHandler{check: check}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Ready)
		r.Get("/ready", h.Ready)
		r.Get("/live", h.Live)
	})
}

// Ready checks the database and answers 503 when it is unreachable
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	database := h.check(r.Context())

	status := http.StatusOK
	overall := "Healthy"
	if database["status"] != "up" {
		status = http.StatusServiceUnavailable
		overall = "Unhealthy"
	}

	middleware.RespondWithJSON(w, status, map[string]any{
		"status":    overall,
		"timestamp": time.Now().UTC(),
		"checks": map[string]any{
			"database": database,
		},
	})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":    "Alive",
		"timestamp": time.Now().UTC(),
	})
}
