package domain

import (
	"context"
	"time"
)

// Lease states.
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

// Payment states.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Lease is a tenancy contract binding a user to a unit for a date range.
// Deleting a lease cascades to its payments.
type Lease struct {
	ID              int64     `json:"id"`
	UnitID          int64     `json:"unit_id"`
	TenantID        int64     `json:"tenant_id"`
	StartDate       DateOnly  `json:"start_date"`
	EndDate         DateOnly  `json:"end_date"`
	RentAmount      float64   `json:"rent_amount"`
	SecurityDeposit float64   `json:"security_deposit"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`

	// Denormalized on read; null when the relation is gone.
	UnitNumber  *string `json:"unit_number"`
	TowerName   *string `json:"tower_name"`
	TenantName  *string `json:"tenant_name"`
	TenantEmail *string `json:"tenant_email"`
}

// Payment is a recorded payment against a lease.
type Payment struct {
	ID            int64     `json:"id"`
	LeaseID       int64     `json:"lease_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   DateOnly  `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeaseRepository defines data access for leases. Create marks the leased
// unit occupied and Delete marks it available again, both within the same
// transaction as the lease write. A missing unit skips the status change
// without error.
type LeaseRepository interface {
	Create(ctx context.Context, lease *Lease) error
	GetByID(ctx context.Context, id int64) (*Lease, error)
	Update(ctx context.Context, lease *Lease) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Lease, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*Lease, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*Payment, error)
}

// DashboardCounts are the raw aggregates behind the admin dashboard,
// always read live from the store.
type DashboardCounts struct {
	TotalUnits      int
	OccupiedUnits   int
	AvailableUnits  int
	ActiveLeases    int
	PendingBookings int
	CompletedTotal  float64
}

// StatsRepository reads dashboard aggregates.
type StatsRepository interface {
	DashboardCounts(ctx context.Context) (*DashboardCounts, error)
}
