package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/terminal-auth/internal/api/shared"
	"github.com/phrazzld/terminal-auth/internal/platform/logger"
	"github.com/phrazzld/terminal-auth/internal/redact"
)

// DefaultHealthTimeout bounds the database ping of a health check.
const DefaultHealthTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service and database reachability.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. A non-positive timeout uses
// DefaultHealthTimeout.
func NewHealthHandler(db Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}
	return &HealthHandler{db: db, timeout: timeout}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("health check: database unreachable",
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "unreachable",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
