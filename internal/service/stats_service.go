package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/yourorg/rentalhub/internal/domain"
)

// DashboardStats is the flat numeric summary returned to admins.
type DashboardStats struct {
	TotalUnits      int     `json:"total_units"`
	OccupiedUnits   int     `json:"occupied_units"`
	AvailableUnits  int     `json:"available_units"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	TotalTenants    int     `json:"total_tenants"`
	PendingBookings int     `json:"pending_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// StatsService computes the admin dashboard from live aggregates.
type StatsService struct {
	stats  domain.StatsRepository
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(stats domain.StatsRepository, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsService{stats: stats, logger: logger}
}

// Dashboard reads the aggregates and derives the summary.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.stats.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(counts), nil
}

// Summarize turns raw counts into the dashboard view. The occupancy rate is
// occupied/total*100 rounded to two decimals, and exactly 0 when there are
// no units.
func Summarize(counts *domain.DashboardCounts) *DashboardStats {
	rate := 0.0
	if counts.TotalUnits > 0 {
		rate = float64(counts.OccupiedUnits) / float64(counts.TotalUnits) * 100
		rate = math.Round(rate*100) / 100
	}

	return &DashboardStats{
		TotalUnits:      counts.TotalUnits,
		OccupiedUnits:   counts.OccupiedUnits,
		AvailableUnits:  counts.AvailableUnits,
		OccupancyRate:   rate,
		TotalTenants:    counts.ActiveLeases,
		PendingBookings: counts.PendingBookings,
		TotalRevenue:    counts.CompletedTotal,
	}
}
