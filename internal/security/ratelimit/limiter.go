package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/rentalhub/internal/infrastructure/redis"
)

// Limiter is a Redis-backed fixed-window rate limiter. Counters are shared
// across replicas, so the limit holds for the deployment as a whole.
type Limiter struct {
	redis   *redis.Client
	maxReqs int64
	window  time.Duration
	logger  *slog.Logger
}

// NewLimiter creates a limiter allowing maxRequests per window per key.
func NewLimiter(redisClient *redis.Client, maxRequests int, window time.Duration, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Limiter{
		redis:   redisClient,
		maxReqs: int64(maxRequests),
		window:  window,
		logger:  logger,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
// Fails open when Redis is unreachable: throttling is not worth an outage
// in this domain.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if key == "" {
		return true
	}

	count, err := l.redis.IncrWithTTL(ctx, "ratelimit:"+key, l.window)
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request",
			slog.String("error", err.Error()),
		)
		return true
	}

	return count <= l.maxReqs
}
