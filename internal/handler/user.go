package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
)

// UserHandler serves the admin user directory.
type UserHandler struct {
	users  domain.UserRepository
	policy *security.Policy
	logger *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users domain.UserRepository, policy *security.Policy, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{users: users, policy: policy, logger: logger}
}

// List handles GET /users: the resident directory, admin-only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpListUsers); err != nil {
		writeError(w, h.logger, err)
		return
	}

	residents, err := h.users.ListByRole(r.Context(), domain.RoleResident)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, residents)
}
