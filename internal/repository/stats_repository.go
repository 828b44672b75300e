package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresStatsRepository reads dashboard aggregates straight from the
// store on every call; the dashboard is a live view.
type PostgresStatsRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStatsRepository creates a new stats repository.
func NewPostgresStatsRepository(db *sql.DB, logger *slog.Logger) *PostgresStatsRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsRepository{db: db, logger: logger}
}

// DashboardCounts runs the aggregate queries behind the admin dashboard.
func (r *PostgresStatsRepository) DashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	counts := &domain.DashboardCounts{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM units),
			(SELECT COUNT(*) FROM units WHERE status = 'occupied'),
			(SELECT COUNT(*) FROM units WHERE status = 'available'),
			(SELECT COUNT(*) FROM leases WHERE status = 'active'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed')
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&counts.TotalUnits,
		&counts.OccupiedUnits,
		&counts.AvailableUnits,
		&counts.ActiveLeases,
		&counts.PendingBookings,
		&counts.CompletedTotal,
	)
	if err != nil {
		r.logger.Error("failed to read dashboard counts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read dashboard counts: %w", err)
	}

	return counts, nil
}
