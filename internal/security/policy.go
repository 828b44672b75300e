package security

import (
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// Operation names a guarded action on a resource class.
type Operation string

const (
	OpManageTowers    Operation = "manage_towers"
	OpManageUnits     Operation = "manage_units"
	OpManageAmenities Operation = "manage_amenities"
	OpManageLeases    Operation = "manage_leases"
	OpRecordPayments  Operation = "record_payments"
	OpViewDashboard   Operation = "view_dashboard"
	OpListUsers       Operation = "list_users"
)

// rolePermissions maps roles to the operations they may perform. Residents
// hold no blanket permissions; their access to bookings and leases is
// ownership-scoped via RequireOwner.
var rolePermissions = map[domain.Role][]Operation{
	domain.RoleAdmin: {
		OpManageTowers,
		OpManageUnits,
		OpManageAmenities,
		OpManageLeases,
		OpRecordPayments,
		OpViewDashboard,
		OpListUsers,
	},
	domain.RoleResident: {},
}

// Policy is the single authorization decision point: every handler asks it,
// none carry inline role checks.
type Policy struct {
	logger *slog.Logger
}

// NewPolicy creates a new authorization policy.
func NewPolicy(logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{logger: logger}
}

// Can reports whether a role holds an operation permission.
func (p *Policy) Can(role domain.Role, op Operation) bool {
	permissions, exists := rolePermissions[role]
	if !exists {
		return false
	}
	for _, candidate := range permissions {
		if candidate == op {
			return true
		}
	}
	return false
}

// Require returns domain.ErrForbidden unless the role holds the operation
// permission.
func (p *Policy) Require(role domain.Role, op Operation) error {
	if !p.Can(role, op) {
		p.logger.Warn("permission denied",
			slog.String("role", string(role)),
			slog.String("operation", string(op)),
		)
		return fmt.Errorf("%s cannot %s: %w", role, op, domain.ErrForbidden)
	}
	return nil
}

// RequireOwner allows admins through unconditionally and everyone else only
// when they own the resource.
func (p *Policy) RequireOwner(role domain.Role, callerID, ownerID int64) error {
	if role == domain.RoleAdmin || callerID == ownerID {
		return nil
	}
	p.logger.Warn("ownership denied",
		slog.Int64("caller_id", callerID),
		slog.Int64("owner_id", ownerID),
	)
	return fmt.Errorf("not the resource owner: %w", domain.ErrForbidden)
}
