package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
)

// PaymentHandler handles payment endpoints. Recording payments is
// admin-only; residents list payments made against their own leases.
type PaymentHandler struct {
	payments domain.PaymentRepository
	users    domain.UserRepository
	policy   *security.Policy
	audit    *audit.Logger
	logger   *slog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(payments domain.PaymentRepository, users domain.UserRepository, policy *security.Policy, auditLog *audit.Logger, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentHandler{
		payments: payments,
		users:    users,
		policy:   policy,
		audit:    auditLog,
		logger:   logger,
	}
}

// PaymentRequest represents a recorded payment.
type PaymentRequest struct {
	LeaseID       int64           `json:"lease_id"`
	Amount        float64         `json:"amount"`
	PaymentDate   domain.DateOnly `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

// List handles GET /payments. Admins see every payment, residents the ones
// against their own leases.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var payments []*domain.Payment
	if caller.Role == domain.RoleAdmin {
		payments, err = h.payments.List(r.Context())
	} else {
		payments, err = h.payments.ListByTenant(r.Context(), caller.ID)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// Get handles GET /payments/{id}.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r, h.users); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payment, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Create handles POST /payments. Payments default to completed when no
// status is given.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.policy.Require(caller.Role, security.OpRecordPayments); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Status == "" {
		req.Status = domain.PaymentCompleted
	}

	payment := &domain.Payment{
		LeaseID:       req.LeaseID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}

	if err := h.payments.Create(r.Context(), payment); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.audit.LogAction(r.Context(), caller.ID, "create", "payment", strconv.FormatInt(payment.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, payment)
}
