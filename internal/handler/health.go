package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/rentalhub/internal/infrastructure/redis"
	"github.com/yourorg/rentalhub/pkg/database"
)

// HealthHandler reports process liveness and dependency health.
type HealthHandler struct {
	pool   *database.Pool
	redis  *redis.Client
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *database.Pool, redisClient *redis.Client, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{pool: pool, redis: redisClient, logger: logger}
}

// Health handles GET /health. Degraded dependencies flip the status but the
// endpoint still answers 200 so probes can tell "down" from "unreachable".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	status := "healthy"

	if err := h.pool.Health(r.Context()); err != nil {
		h.logger.Warn("database health check failed", slog.String("error", err.Error()))
		checks["database"] = "unavailable"
		status = "degraded"
	}
	if h.redis == nil {
		checks["redis"] = "disabled"
	} else if err := h.redis.Ping(r.Context()); err != nil {
		h.logger.Warn("redis health check failed", slog.String("error", err.Error()))
		checks["redis"] = "unavailable"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"checks": checks,
	})
}
