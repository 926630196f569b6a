// Package health provides liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/bissquit/newsletter/internal/pkg/ctxlog"
	"github.com/bissquit/newsletter/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves health probes.
type Handler struct {
	db Pinger
}

// NewHandler creates a new health handler. db is only used by the readiness probe.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes registers health routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health_check", h.HealthCheck)
	r.Get("/readyz", h.Ready)
}

// HealthCheck handles GET /health_check. It always answers 200 with an empty body.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.Empty(w, http.StatusOK)
}

// Ready handles GET /readyz by pinging the database.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}
