package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/rentalhub/internal/domain"
)

func TestPolicyRolePermissions(t *testing.T) {
	p := NewPolicy(nil)

	adminOps := []Operation{
		OpManageTowers,
		OpManageUnits,
		OpManageAmenities,
		OpManageLeases,
		OpRecordPayments,
		OpViewDashboard,
		OpListUsers,
	}

	for _, op := range adminOps {
		assert.True(t, p.Can(domain.RoleAdmin, op), "admin should hold %s", op)
		assert.False(t, p.Can(domain.RoleResident, op), "resident should not hold %s", op)
	}

	assert.False(t, p.Can(domain.Role("ghost"), OpManageTowers))
}

func TestPolicyRequire(t *testing.T) {
	p := NewPolicy(nil)

	assert.NoError(t, p.Require(domain.RoleAdmin, OpManageLeases))

	err := p.Require(domain.RoleResident, OpManageLeases)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestPolicyRequireOwner(t *testing.T) {
	p := NewPolicy(nil)

	// Admins pass regardless of ownership.
	assert.NoError(t, p.RequireOwner(domain.RoleAdmin, 1, 99))

	// Owners pass.
	assert.NoError(t, p.RequireOwner(domain.RoleResident, 7, 7))

	// Everyone else is forbidden.
	err := p.RequireOwner(domain.RoleResident, 7, 8)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
