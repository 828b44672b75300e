package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rentalhub/internal/domain"
)

// memLeaseRepo fakes the lease store, including the one-hop denormalization
// a real read performs via joins.
type memLeaseRepo struct {
	nextID      int64
	byID        map[int64]*domain.Lease
	unitNumbers map[int64]string
	towerNames  map[int64]string
}

func newMemLeaseRepo() *memLeaseRepo {
	return &memLeaseRepo{
		byID:        map[int64]*domain.Lease{},
		unitNumbers: map[int64]string{},
		towerNames:  map[int64]string{},
	}
}

func (m *memLeaseRepo) view(l *domain.Lease) *domain.Lease {
	clone := *l
	if number, ok := m.unitNumbers[l.UnitID]; ok {
		clone.UnitNumber = &number
	}
	if name, ok := m.towerNames[l.UnitID]; ok {
		clone.TowerName = &name
	}
	return &clone
}

func (m *memLeaseRepo) Create(ctx context.Context, l *domain.Lease) error {
	m.nextID++
	l.ID = m.nextID
	l.CreatedAt = time.Now()
	clone := *l
	m.byID[l.ID] = &clone
	return nil
}

func (m *memLeaseRepo) GetByID(ctx context.Context, id int64) (*domain.Lease, error) {
	if l, ok := m.byID[id]; ok {
		return m.view(l), nil
	}
	return nil, domain.ErrNotFound
}

func (m *memLeaseRepo) Update(ctx context.Context, l *domain.Lease) error {
	if _, ok := m.byID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *l
	m.byID[l.ID] = &clone
	return nil
}

func (m *memLeaseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memLeaseRepo) List(ctx context.Context) ([]*domain.Lease, error) {
	out := []*domain.Lease{}
	for _, l := range m.byID {
		out = append(out, m.view(l))
	}
	return out, nil
}

func (m *memLeaseRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	out := []*domain.Lease{}
	for _, l := range m.byID {
		if l.TenantID == tenantID {
			out = append(out, m.view(l))
		}
	}
	return out, nil
}

func TestLeaseCreateReturnsDenormalizedView(t *testing.T) {
	env := newTestEnv(t)
	tenant, _ := env.seedUser(t, "tenant@example.com", domain.RoleResident)
	_, adminToken := env.seedUser(t, "admin@example.com", domain.RoleAdmin)

	env.leases.unitNumbers[5] = "A-101"
	env.leases.towerNames[5] = "Sunrise Tower"

	rec := env.do(t, http.MethodPost, "/leases", adminToken, map[string]any{
		"unit_id":          5,
		"tenant_id":        tenant.ID,
		"start_date":       "2025-01-01",
		"end_date":         "2025-12-31",
		"rent_amount":      1500,
		"security_deposit": 3000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var lease domain.Lease
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lease))
	assert.Equal(t, domain.LeaseActive, lease.Status)
	require.NotNil(t, lease.UnitNumber)
	assert.Equal(t, "A-101", *lease.UnitNumber)
	require.NotNil(t, lease.TowerName)
	assert.Equal(t, "Sunrise Tower", *lease.TowerName)
}

func TestLeaseMutationsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	tenant, residentToken := env.seedUser(t, "tenant@example.com", domain.RoleResident)

	rec := env.do(t, http.MethodPost, "/leases", residentToken, map[string]any{
		"unit_id":   5,
		"tenant_id": tenant.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/leases/1", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaseListScoping(t *testing.T) {
	env := newTestEnv(t)
	tenant, tenantToken := env.seedUser(t, "tenant@example.com", domain.RoleResident)
	other, _ := env.seedUser(t, "other@example.com", domain.RoleResident)
	_, adminToken := env.seedUser(t, "admin@example.com", domain.RoleAdmin)

	require.NoError(t, env.leases.Create(context.Background(), &domain.Lease{UnitID: 1, TenantID: tenant.ID, Status: domain.LeaseActive}))
	require.NoError(t, env.leases.Create(context.Background(), &domain.Lease{UnitID: 2, TenantID: other.ID, Status: domain.LeaseActive}))

	rec := env.do(t, http.MethodGet, "/leases", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []*domain.Lease
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	assert.Len(t, all, 2)

	rec = env.do(t, http.MethodGet, "/leases", tenantToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []*domain.Lease
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&mine))
	require.Len(t, mine, 1)
	assert.Equal(t, tenant.ID, mine[0].TenantID)
}

func TestLeaseGetOwnershipScoped(t *testing.T) {
	env := newTestEnv(t)
	tenant, tenantToken := env.seedUser(t, "tenant@example.com", domain.RoleResident)
	_, otherToken := env.seedUser(t, "other@example.com", domain.RoleResident)

	lease := &domain.Lease{UnitID: 1, TenantID: tenant.ID, Status: domain.LeaseActive}
	require.NoError(t, env.leases.Create(context.Background(), lease))

	rec := env.do(t, http.MethodGet, "/leases/1", tenantToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/leases/1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
