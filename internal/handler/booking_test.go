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

// memBookingRepo fakes the booking store, including the one-hop
// denormalization a real read performs via joins.
type memBookingRepo struct {
	nextID       int64
	byID         map[int64]*domain.Booking
	userNames    map[int64]string
	amenityNames map[int64]string
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		byID:         map[int64]*domain.Booking{},
		userNames:    map[int64]string{},
		amenityNames: map[int64]string{},
	}
}

func (m *memBookingRepo) view(b *domain.Booking) *domain.Booking {
	clone := *b
	if name, ok := m.userNames[b.UserID]; ok {
		clone.UserName = &name
	}
	if name, ok := m.amenityNames[b.AmenityID]; ok {
		clone.AmenityName = &name
	}
	return &clone
}

func (m *memBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	m.byID[b.ID] = &clone
	return nil
}

func (m *memBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if b, ok := m.byID[id]; ok {
		return m.view(b), nil
	}
	return nil, domain.ErrNotFound
}

func (m *memBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	if _, ok := m.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	clone := *b
	m.byID[b.ID] = &clone
	return nil
}

func (m *memBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memBookingRepo) List(ctx context.Context) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range m.byID {
		out = append(out, m.view(b))
	}
	return out, nil
}

func (m *memBookingRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range m.byID {
		if b.UserID == userID {
			out = append(out, m.view(b))
		}
	}
	return out, nil
}

func TestBookingCreateReturnsDenormalizedView(t *testing.T) {
	env := newTestEnv(t)
	resident, residentToken := env.seedUser(t, "res@example.com", domain.RoleResident)

	env.bookings.userNames[resident.ID] = "Test User"
	env.bookings.amenityNames[3] = "Swimming Pool"

	rec := env.do(t, http.MethodPost, "/bookings", residentToken, map[string]any{
		"amenity_id":   3,
		"booking_date": "2025-03-15",
		"start_time":   "10:00",
		"end_time":     "11:00",
		"notes":        "morning swim",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking domain.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&booking))
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, resident.ID, booking.UserID)
	require.NotNil(t, booking.UserName)
	assert.Equal(t, "Test User", *booking.UserName)
	require.NotNil(t, booking.AmenityName)
	assert.Equal(t, "Swimming Pool", *booking.AmenityName)
}

func TestBookingListRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
