package domain

import (
	"context"
	"time"
)

// Booking states.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingDeclined  = "declined"
	BookingCancelled = "cancelled"
)

// Amenity is a shared facility residents can book.
type Amenity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Available   bool      `json:"available"`
	Icon        string    `json:"icon"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Booking reserves an amenity for a user in a time window.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AmenityID   int64     `json:"amenity_id"`
	BookingDate DateOnly  `json:"booking_date"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	AdminNotes  string    `json:"admin_notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Denormalized on read; null when the relation is gone.
	UserName    *string `json:"user_name"`
	UserEmail   *string `json:"user_email"`
	AmenityName *string `json:"amenity_name"`
}

// AmenityRepository defines data access for amenities.
type AmenityRepository interface {
	Create(ctx context.Context, amenity *Amenity) error
	GetByID(ctx context.Context, id int64) (*Amenity, error)
	Update(ctx context.Context, amenity *Amenity) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Amenity, error)
}

// BookingRepository defines data access for bookings. Listings are ordered
// by creation time, most recent first.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*Booking, error)
}
