package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/rentalhub/internal/domain"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name     string
		counts   domain.DashboardCounts
		wantRate float64
	}{
		{
			name:     "no units",
			counts:   domain.DashboardCounts{},
			wantRate: 0,
		},
		{
			name:     "half occupied",
			counts:   domain.DashboardCounts{TotalUnits: 4, OccupiedUnits: 2, AvailableUnits: 2},
			wantRate: 50,
		},
		{
			name:     "rounds to two decimals",
			counts:   domain.DashboardCounts{TotalUnits: 3, OccupiedUnits: 1, AvailableUnits: 2},
			wantRate: 33.33,
		},
		{
			name:     "fully occupied",
			counts:   domain.DashboardCounts{TotalUnits: 5, OccupiedUnits: 5},
			wantRate: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := Summarize(&tc.counts)
			assert.Equal(t, tc.wantRate, stats.OccupancyRate)
			assert.Equal(t, tc.counts.TotalUnits, stats.TotalUnits)
			assert.Equal(t, tc.counts.AvailableUnits, stats.AvailableUnits)
		})
	}
}

func TestSummarizeMapsAggregates(t *testing.T) {
	stats := Summarize(&domain.DashboardCounts{
		TotalUnits:      10,
		OccupiedUnits:   7,
		AvailableUnits:  3,
		ActiveLeases:    7,
		PendingBookings: 2,
		CompletedTotal:  4200.50,
	})

	assert.Equal(t, 7, stats.TotalTenants)
	assert.Equal(t, 2, stats.PendingBookings)
	assert.Equal(t, 4200.50, stats.TotalRevenue)
	assert.Equal(t, 70.0, stats.OccupancyRate)
}
