package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security"
)

// BookingService enforces the booking lifecycle rules: residents book for
// themselves, admins moderate, owners may only reschedule while a booking
// is still pending.
type BookingService struct {
	bookings domain.BookingRepository
	policy   *security.Policy
	logger   *slog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(bookings domain.BookingRepository, policy *security.Policy, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingService{
		bookings: bookings,
		policy:   policy,
		logger:   logger,
	}
}

// BookingUpdate carries the mutable booking fields; nil means unchanged.
type BookingUpdate struct {
	Status      *string
	AdminNotes  *string
	Notes       *string
	BookingDate *domain.DateOnly
	StartTime   *domain.TimeOfDay
	EndTime     *domain.TimeOfDay
}

// Create books an amenity for the caller. The booking always belongs to
// the caller and starts out pending.
func (s *BookingService) Create(ctx context.Context, caller *domain.User, booking *domain.Booking) error {
	if booking.AmenityID == 0 || booking.BookingDate.IsZero() ||
		booking.StartTime.IsZero() || booking.EndTime.IsZero() {
		return fmt.Errorf("amenity_id, booking_date, start_time and end_time are required: %w", domain.ErrValidation)
	}

	booking.UserID = caller.ID
	booking.Status = domain.BookingPending
	booking.AdminNotes = ""

	if err := s.bookings.Create(ctx, booking); err != nil {
		return err
	}

	s.logger.Info("booking created",
		slog.Int64("booking_id", booking.ID),
		slog.Int64("user_id", caller.ID),
		slog.Int64("amenity_id", booking.AmenityID),
	)
	return nil
}

// Get returns a booking, admins see all, residents only their own.
func (s *BookingService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.RequireOwner(caller.Role, caller.ID, booking.UserID); err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns all bookings for admins and the caller's own for residents,
// newest first.
func (s *BookingService) List(ctx context.Context, caller *domain.User) ([]*domain.Booking, error) {
	if caller.Role == domain.RoleAdmin {
		return s.bookings.List(ctx)
	}
	return s.bookings.ListByUser(ctx, caller.ID)
}

// Update applies the role-specific mutation rules. Admins change status and
// admin notes. The owning resident may change notes, date and times, but
// only while the booking is still pending; anything else is forbidden.
func (s *BookingService) Update(ctx context.Context, caller *domain.User, id int64, upd BookingUpdate) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.Role == domain.RoleAdmin:
		if upd.Status != nil {
			booking.Status = *upd.Status
		}
		if upd.AdminNotes != nil {
			booking.AdminNotes = *upd.AdminNotes
		}
	case booking.UserID == caller.ID:
		if booking.Status != domain.BookingPending {
			return nil, fmt.Errorf("booking is no longer pending: %w", domain.ErrForbidden)
		}
		if upd.Notes != nil {
			booking.Notes = *upd.Notes
		}
		if upd.BookingDate != nil {
			booking.BookingDate = *upd.BookingDate
		}
		if upd.StartTime != nil {
			booking.StartTime = *upd.StartTime
		}
		if upd.EndTime != nil {
			booking.EndTime = *upd.EndTime
		}
	default:
		return nil, fmt.Errorf("not the booking owner: %w", domain.ErrForbidden)
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking updated",
		slog.Int64("booking_id", booking.ID),
		slog.Int64("caller_id", caller.ID),
		slog.String("status", booking.Status),
	)
	return booking, nil
}

// Delete removes a booking; allowed for admins and the owner.
func (s *BookingService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.RequireOwner(caller.Role, caller.ID, booking.UserID); err != nil {
		return err
	}

	return s.bookings.Delete(ctx, id)
}
