package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anikett35/MediMage/internal/httputil"
	"github.com/anikett35/MediMage/internal/metrics"

	"github.com/go-chi/chi/v5"
)

const (
	readyTimeout = 2 * time.Second

	// DependencyPostgres is the dependency name reported by Ready.
	DependencyPostgres = "postgres"
)

// Pinger is satisfied by *bun.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	metrics *metrics.HealthMetrics
	logger  *slog.Logger
}

func NewHandler(db Pinger, m *metrics.HealthMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready reports whether the database answers within readyTimeout.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		start := time.Now()
		err := h.db.PingContext(ctx)
		h.metrics.RecordDependencyCheck(ctx, DependencyPostgres, time.Since(start), err)
		if err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			httputil.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
	}
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
