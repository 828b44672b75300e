package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresBookingRepository implements domain.BookingRepository using
// PostgreSQL.
type PostgresBookingRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBookingRepository creates a new booking repository.
func NewPostgresBookingRepository(db *sql.DB, logger *slog.Logger) *PostgresBookingRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingRepository{db: db, logger: logger}
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.amenity_id, b.booking_date, b.start_time,
	       b.end_time, b.status, b.notes, b.admin_notes, b.created_at,
	       b.updated_at, u.full_name, u.email, a.name
	FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN amenities a ON a.id = b.amenity_id
`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var userName, userEmail, amenityName sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.AmenityID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Notes,
		&booking.AdminNotes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&userName,
		&userEmail,
		&amenityName,
	)
	if err != nil {
		return nil, err
	}

	if userName.Valid {
		booking.UserName = &userName.String
	}
	if userEmail.Valid {
		booking.UserEmail = &userEmail.String
	}
	if amenityName.Valid {
		booking.AmenityName = &amenityName.String
	}
	return booking, nil
}

func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}

	query := `
		INSERT INTO bookings (user_id, amenity_id, booking_date, start_time,
		                      end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.AmenityID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create booking",
			slog.Int64("user_id", booking.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *PostgresBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// Update persists mutable booking fields and refreshes updated_at.
func (r *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET booking_date = $1, start_time = $2, end_time = $3, status = $4,
		    notes = $5, admin_notes = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
		booking.AdminNotes,
		booking.ID,
	).Scan(&booking.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (r *PostgresBookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostgresBookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, bookingSelect+` ORDER BY b.created_at DESC`)
}

func (r *PostgresBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.list(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *PostgresBookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list bookings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
