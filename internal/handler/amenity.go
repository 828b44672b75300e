package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
)

// AmenityHandler handles amenity endpoints. Reads are public; mutations are
// admin-only.
type AmenityHandler struct {
	amenities domain.AmenityRepository
	users     domain.UserRepository
	policy    *security.Policy
	audit     *audit.Logger
	logger    *slog.Logger
}

// NewAmenityHandler creates a new amenity handler.
func NewAmenityHandler(amenities domain.AmenityRepository, users domain.UserRepository, policy *security.Policy, auditLog *audit.Logger, logger *slog.Logger) *AmenityHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AmenityHandler{
		amenities: amenities,
		users:     users,
		policy:    policy,
		audit:     auditLog,
		logger:    logger,
	}
}

// AmenityRequest carries amenity fields; nil fields are unchanged on update.
type AmenityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Available   *bool   `json:"available"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"image_url"`
}

// List handles GET /amenities.
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.amenities.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, amenities)
}

// Get handles GET /amenities/{id}.
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	amenity, err := h.amenities.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}

// Create handles POST /amenities. New amenities default to available.
func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageAmenities); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req AmenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	amenity := &domain.Amenity{Available: true}
	applyAmenityRequest(amenity, req)

	if err := h.amenities.Create(r.Context(), amenity); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "create", "amenity", strconv.FormatInt(amenity.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, amenity)
}

// Update handles PUT /amenities/{id}.
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageAmenities); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	amenity, err := h.amenities.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req AmenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	applyAmenityRequest(amenity, req)

	if err := h.amenities.Update(r.Context(), amenity); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "update", "amenity", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, amenity)
}

// Delete handles DELETE /amenities/{id}.
func (h *AmenityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageAmenities); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.amenities.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "delete", "amenity", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Amenity deleted successfully"})
}

func applyAmenityRequest(amenity *domain.Amenity, req AmenityRequest) {
	if req.Name != nil {
		amenity.Name = *req.Name
	}
	if req.Description != nil {
		amenity.Description = *req.Description
	}
	if req.Capacity != nil {
		amenity.Capacity = *req.Capacity
	}
	if req.Available != nil {
		amenity.Available = *req.Available
	}
	if req.Icon != nil {
		amenity.Icon = *req.Icon
	}
	if req.ImageURL != nil {
		amenity.ImageURL = *req.ImageURL
	}
}
