package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
)

// TowerHandler handles tower endpoints. Reads are public; mutations are
// admin-only.
type TowerHandler struct {
	towers domain.TowerRepository
	users  domain.UserRepository
	policy *security.Policy
	audit  *audit.Logger
	logger *slog.Logger
}

// NewTowerHandler creates a new tower handler.
func NewTowerHandler(towers domain.TowerRepository, users domain.UserRepository, policy *security.Policy, auditLog *audit.Logger, logger *slog.Logger) *TowerHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TowerHandler{
		towers: towers,
		users:  users,
		policy: policy,
		audit:  auditLog,
		logger: logger,
	}
}

// TowerRequest carries tower fields; nil fields are unchanged on update.
type TowerRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	TotalFloors *int    `json:"total_floors"`
}

// List handles GET /towers.
func (h *TowerHandler) List(w http.ResponseWriter, r *http.Request) {
	towers, err := h.towers.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, towers)
}

// Get handles GET /towers/{id}.
func (h *TowerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	tower, err := h.towers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tower)
}

// Create handles POST /towers.
func (h *TowerHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageTowers); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req TowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	tower := &domain.Tower{}
	applyTowerRequest(tower, req)

	if err := h.towers.Create(r.Context(), tower); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "create", "tower", strconv.FormatInt(tower.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, tower)
}

// Update handles PUT /towers/{id}.
func (h *TowerHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageTowers); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	tower, err := h.towers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req TowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	applyTowerRequest(tower, req)

	if err := h.towers.Update(r.Context(), tower); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "update", "tower", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, tower)
}

// Delete handles DELETE /towers/{id}. Units cascade with the tower.
func (h *TowerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageTowers); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.towers.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "delete", "tower", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tower deleted successfully"})
}

func applyTowerRequest(tower *domain.Tower, req TowerRequest) {
	if req.Name != nil {
		tower.Name = *req.Name
	}
	if req.Address != nil {
		tower.Address = *req.Address
	}
	if req.TotalFloors != nil {
		tower.TotalFloors = *req.TotalFloors
	}
}
