package domain

import (
	"context"
	"time"
)

// Unit occupancy states.
const (
	UnitAvailable   = "available"
	UnitOccupied    = "occupied"
	UnitMaintenance = "maintenance"
)

// Tower is a building containing leasable units. Deleting a tower cascades
// to its units.
type Tower struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	TotalFloors int       `json:"total_floors"`
	CreatedAt   time.Time `json:"created_at"`

	// TotalUnits is denormalized from the units table on read.
	TotalUnits int `json:"total_units"`
}

// Unit is a leasable apartment within a tower.
type Unit struct {
	ID         int64     `json:"id"`
	TowerID    int64     `json:"tower_id"`
	UnitNumber string    `json:"unit_number"`
	Floor      int       `json:"floor"`
	Bedrooms   int       `json:"bedrooms"`
	Bathrooms  int       `json:"bathrooms"`
	AreaSqft   float64   `json:"area_sqft"`
	RentAmount float64   `json:"rent_amount"`
	Status     string    `json:"status"`
	Description string   `json:"description"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`

	// TowerName is denormalized on read; null when the tower is gone.
	TowerName *string `json:"tower_name"`
}

// UnitFilter narrows unit listings. Zero values mean no filtering.
type UnitFilter struct {
	Status  string
	TowerID int64
}

// TowerRepository defines data access for towers.
type TowerRepository interface {
	Create(ctx context.Context, tower *Tower) error
	GetByID(ctx context.Context, id int64) (*Tower, error)
	Update(ctx context.Context, tower *Tower) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Tower, error)
}

// UnitRepository defines data access for units.
type UnitRepository interface {
	Create(ctx context.Context, unit *Unit) error
	GetByID(ctx context.Context, id int64) (*Unit, error)
	Update(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UnitFilter) ([]*Unit, error)
}
