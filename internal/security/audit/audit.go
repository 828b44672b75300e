package audit

import (
	"context"
	"log/slog"
)

// Logger records an audit trail of mutating actions on slog. A log sink is
// enough here; nothing replays the trail programmatically.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// LogAction records a mutation attempt against a resource.
func (al *Logger) LogAction(ctx context.Context, userID int64, action, resource, resourceID, status string) {
	al.logger.Info("audit",
		slog.Int64("user_id", userID),
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
	)
}

// LogDenied records a rejected access attempt.
func (al *Logger) LogDenied(ctx context.Context, userID int64, resource, reason string) {
	al.logger.Warn("audit",
		slog.Int64("user_id", userID),
		slog.String("action", "access_denied"),
		slog.String("resource", resource),
		slog.String("reason", reason),
	)
}
