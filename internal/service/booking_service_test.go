package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
)

type memBookingRepo struct {
	nextID int64
	byID   map[int64]*domain.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byID: map[int64]*domain.Booking{}}
}

func (m *memBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.byID[b.ID] = b
	return nil
}

func (m *memBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if b, ok := m.byID[id]; ok {
		clone := *b
		return &clone, nil
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
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookingRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range m.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

var (
	admin    = &domain.User{ID: 1, Role: domain.RoleAdmin}
	resident = &domain.User{ID: 2, Role: domain.RoleResident}
	stranger = &domain.User{ID: 3, Role: domain.RoleResident}
)

func newTestBookingService() (*BookingService, *memBookingRepo) {
	repo := newMemBookingRepo()
	return NewBookingService(repo, security.NewPolicy(nil), nil), repo
}

func newBooking(t *testing.T, s *BookingService, owner *domain.User) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		AmenityID:   1,
		BookingDate: domain.Date(2025, time.March, 15),
		StartTime:   domain.Clock(10, 0),
		EndTime:     domain.Clock(11, 0),
		Notes:       "birthday party",
	}
	require.NoError(t, s.Create(context.Background(), owner, b))
	return b
}

func TestBookingCreateForcesOwnershipAndStatus(t *testing.T) {
	s, _ := newTestBookingService()

	b := &domain.Booking{
		UserID:      999, // ignored
		AmenityID:   1,
		BookingDate: domain.Date(2025, time.March, 15),
		StartTime:   domain.Clock(10, 0),
		EndTime:     domain.Clock(11, 0),
		Status:      domain.BookingApproved, // ignored
		AdminNotes:  "sneaky",               // ignored
	}
	require.NoError(t, s.Create(context.Background(), resident, b))

	assert.Equal(t, resident.ID, b.UserID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Empty(t, b.AdminNotes)
}

func TestBookingCreateRequiresFields(t *testing.T) {
	s, _ := newTestBookingService()

	err := s.Create(context.Background(), resident, &domain.Booking{AmenityID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestBookingAdminModeration(t *testing.T) {
	s, _ := newTestBookingService()
	b := newBooking(t, s, resident)

	status := domain.BookingApproved
	notes := "confirmed for the clubhouse"
	updated, err := s.Update(context.Background(), admin, b.ID, BookingUpdate{
		Status:     &status,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, updated.Status)
	assert.Equal(t, notes, updated.AdminNotes)
}

func TestBookingOwnerReschedulesWhilePending(t *testing.T) {
	s, _ := newTestBookingService()
	b := newBooking(t, s, resident)

	newDate := domain.Date(2025, time.March, 20)
	newStart := domain.Clock(14, 0)
	updated, err := s.Update(context.Background(), resident, b.ID, BookingUpdate{
		BookingDate: &newDate,
		StartTime:   &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", updated.BookingDate.Format("2006-01-02"))
	assert.Equal(t, "14:00", updated.StartTime.Format("15:04"))
	assert.Equal(t, domain.BookingPending, updated.Status)
}

func TestBookingOwnerCannotTouchDecidedBooking(t *testing.T) {
	s, _ := newTestBookingService()
	b := newBooking(t, s, resident)

	status := domain.BookingApproved
	_, err := s.Update(context.Background(), admin, b.ID, BookingUpdate{Status: &status})
	require.NoError(t, err)

	notes := "moved plans"
	_, err = s.Update(context.Background(), resident, b.ID, BookingUpdate{Notes: &notes})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestBookingStrangerForbidden(t *testing.T) {
	s, _ := newTestBookingService()
	b := newBooking(t, s, resident)

	notes := "not mine"
	_, err := s.Update(context.Background(), stranger, b.ID, BookingUpdate{Notes: &notes})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = s.Get(context.Background(), stranger, b.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = s.Delete(context.Background(), stranger, b.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestBookingListScoping(t *testing.T) {
	s, _ := newTestBookingService()
	newBooking(t, s, resident)
	newBooking(t, s, stranger)

	all, err := s.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := s.List(context.Background(), resident)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, resident.ID, mine[0].UserID)
}

func TestBookingDelete(t *testing.T) {
	s, repo := newTestBookingService()
	b := newBooking(t, s, resident)

	require.NoError(t, s.Delete(context.Background(), resident, b.ID))
	_, err := repo.GetByID(context.Background(), b.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
