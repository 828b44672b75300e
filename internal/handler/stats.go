package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/service"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	statsService *service.StatsService
	users        domain.UserRepository
	policy       *security.Policy
	logger       *slog.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService *service.StatsService, users domain.UserRepository, policy *security.Policy, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsHandler{
		statsService: statsService,
		users:        users,
		policy:       policy,
		logger:       logger,
	}
}

// Dashboard handles GET /stats/dashboard. The numbers are computed live on
// every request.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpViewDashboard); err != nil {
		writeError(w, h.logger, err)
		return
	}

	stats, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
