package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
)

// UnitHandler handles unit endpoints. Reads are public; mutations are
// admin-only.
type UnitHandler struct {
	units  domain.UnitRepository
	users  domain.UserRepository
	policy *security.Policy
	audit  *audit.Logger
	logger *slog.Logger
}

// NewUnitHandler creates a new unit handler.
func NewUnitHandler(units domain.UnitRepository, users domain.UserRepository, policy *security.Policy, auditLog *audit.Logger, logger *slog.Logger) *UnitHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &UnitHandler{
		units:  units,
		users:  users,
		policy: policy,
		audit:  auditLog,
		logger: logger,
	}
}

// UnitRequest carries unit fields; nil fields are unchanged on update.
type UnitRequest struct {
	TowerID     *int64   `json:"tower_id"`
	UnitNumber  *string  `json:"unit_number"`
	Floor       *int     `json:"floor"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	AreaSqft    *float64 `json:"area_sqft"`
	RentAmount  *float64 `json:"rent_amount"`
	Status      *string  `json:"status"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

// List handles GET /units with optional ?status= and ?tower_id= filters.
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.UnitFilter
	filter.Status = r.URL.Query().Get("status")
	if raw := r.URL.Query().Get("tower_id"); raw != "" {
		towerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, h.logger, domain.ErrValidation)
			return
		}
		filter.TowerID = towerID
	}

	units, err := h.units.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// Get handles GET /units/{id}.
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	unit, err := h.units.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

// Create handles POST /units.
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageUnits); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req UnitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	unit := &domain.Unit{Status: domain.UnitAvailable}
	applyUnitRequest(unit, req)

	if err := h.units.Create(r.Context(), unit); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "create", "unit", strconv.FormatInt(unit.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, unit)
}

// Update handles PUT /units/{id}.
func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageUnits); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	unit, err := h.units.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req UnitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	applyUnitRequest(unit, req)

	if err := h.units.Update(r.Context(), unit); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "update", "unit", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, unit)
}

// Delete handles DELETE /units/{id}.
func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageUnits); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.units.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "delete", "unit", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Unit deleted successfully"})
}

func applyUnitRequest(unit *domain.Unit, req UnitRequest) {
	if req.TowerID != nil {
		unit.TowerID = *req.TowerID
	}
	if req.UnitNumber != nil {
		unit.UnitNumber = *req.UnitNumber
	}
	if req.Floor != nil {
		unit.Floor = *req.Floor
	}
	if req.Bedrooms != nil {
		unit.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		unit.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqft != nil {
		unit.AreaSqft = *req.AreaSqft
	}
	if req.RentAmount != nil {
		unit.RentAmount = *req.RentAmount
	}
	if req.Status != nil {
		unit.Status = *req.Status
	}
	if req.Description != nil {
		unit.Description = *req.Description
	}
	if req.ImageURL != nil {
		unit.ImageURL = *req.ImageURL
	}
}
