package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/observability/metrics"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
)

// LeaseHandler handles lease endpoints. Mutations are admin-only; residents
// can read their own leases.
type LeaseHandler struct {
	leases domain.LeaseRepository
	users  domain.UserRepository
	policy *security.Policy
	audit  *audit.Logger
	logger *slog.Logger
}

// NewLeaseHandler creates a new lease handler.
func NewLeaseHandler(leases domain.LeaseRepository, users domain.UserRepository, policy *security.Policy, auditLog *audit.Logger, logger *slog.Logger) *LeaseHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaseHandler{
		leases: leases,
		users:  users,
		policy: policy,
		audit:  auditLog,
		logger: logger,
	}
}

// LeaseRequest carries lease fields; nil fields are unchanged on update.
type LeaseRequest struct {
	UnitID          *int64           `json:"unit_id"`
	TenantID        *int64           `json:"tenant_id"`
	StartDate       *domain.DateOnly `json:"start_date"`
	EndDate         *domain.DateOnly `json:"end_date"`
	RentAmount      *float64         `json:"rent_amount"`
	SecurityDeposit *float64         `json:"security_deposit"`
	Status          *string          `json:"status"`
}

// List handles GET /leases. Admins see every lease, residents their own.
func (h *LeaseHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var leases []*domain.Lease
	if caller.Role == domain.RoleAdmin {
		leases, err = h.leases.List(r.Context())
	} else {
		leases, err = h.leases.ListByTenant(r.Context(), caller.ID)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

// Get handles GET /leases/{id}. Residents can only read leases they hold.
func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	lease, err := h.leases.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.policy.RequireOwner(caller.Role, caller.ID, lease.TenantID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

// Create handles POST /leases. The leased unit is marked occupied in the
// same transaction.
func (h *LeaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageLeases); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req LeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	lease := &domain.Lease{Status: domain.LeaseActive}
	applyLeaseRequest(lease, req)

	if err := h.leases.Create(r.Context(), lease); err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Re-read so the response carries the denormalized unit/tenant fields.
	created, err := h.leases.GetByID(r.Context(), lease.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveLeaseOperation("create", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "create", "lease", strconv.FormatInt(lease.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /leases/{id}.
func (h *LeaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageLeases); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	lease, err := h.leases.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req LeaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	applyLeaseRequest(lease, req)

	if err := h.leases.Update(r.Context(), lease); err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveLeaseOperation("update", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "update", "lease", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, lease)
}

// Delete handles DELETE /leases/{id}. The unit reverts to available and the
// lease's payments cascade away.
func (h *LeaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpManageLeases); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.leases.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveLeaseOperation("delete", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "delete", "lease", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lease deleted successfully"})
}

func applyLeaseRequest(lease *domain.Lease, req LeaseRequest) {
	if req.UnitID != nil {
		lease.UnitID = *req.UnitID
	}
	if req.TenantID != nil {
		lease.TenantID = *req.TenantID
	}
	if req.StartDate != nil {
		lease.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		lease.EndDate = *req.EndDate
	}
	if req.RentAmount != nil {
		lease.RentAmount = *req.RentAmount
	}
	if req.SecurityDeposit != nil {
		lease.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Status != nil {
		lease.Status = *req.Status
	}
}
