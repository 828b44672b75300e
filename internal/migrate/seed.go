package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed loads demo fixtures. It is a no-op when the users table already has
// rows, so it is safe to run at every start.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed precheck failed: %w", err)
	}
	if count > 0 {
		logger.Debug("seed skipped, users already present")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := seedUser(ctx, tx, "admin@rental.com", "admin123", "Admin User", "1234567890", "admin"); err != nil {
		return err
	}
	johnID, err := seedUser(ctx, tx, "john@example.com", "user123", "John Doe", "9876543210", "resident")
	if err != nil {
		return err
	}
	janeID, err := seedUser(ctx, tx, "jane@example.com", "user123", "Jane Smith", "9876543211", "resident")
	if err != nil {
		return err
	}

	var tower1, tower2 int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO towers (name, address, total_floors) VALUES ($1, $2, $3) RETURNING id`,
		"Sunrise Tower", "123 Main Street, Downtown", 15).Scan(&tower1); err != nil {
		return fmt.Errorf("seed tower failed: %w", err)
	}
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO towers (name, address, total_floors) VALUES ($1, $2, $3) RETURNING id`,
		"Sunset Tower", "456 Oak Avenue, Uptown", 20).Scan(&tower2); err != nil {
		return fmt.Errorf("seed tower failed: %w", err)
	}

	units := []struct {
		towerID    int64
		number     string
		floor      int
		beds       int
		baths      int
		area       float64
		rent       float64
		status     string
		desc       string
	}{
		{tower1, "A-101", 1, 2, 2, 1200, 1500, "available", "Spacious 2BHK with modern amenities and city view"},
		{tower1, "A-102", 1, 3, 2, 1500, 2000, "available", "Luxurious 3BHK apartment with balcony"},
		{tower1, "A-201", 2, 1, 1, 800, 1000, "occupied", "Cozy 1BHK perfect for singles or couples"},
		{tower2, "B-101", 1, 2, 2, 1300, 1600, "available", "Modern 2BHK with premium fittings"},
		{tower2, "B-301", 3, 3, 3, 1800, 2500, "available", "Premium 3BHK penthouse with terrace"},
	}
	unitIDs := make([]int64, len(units))
	for i, u := range units {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO units (tower_id, unit_number, floor, bedrooms, bathrooms, area_sqft, rent_amount, status, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			u.towerID, u.number, u.floor, u.beds, u.baths, u.area, u.rent, u.status, u.desc,
		).Scan(&unitIDs[i]); err != nil {
			return fmt.Errorf("seed unit failed: %w", err)
		}
	}

	amenities := []struct {
		name     string
		desc     string
		capacity int
		icon     string
	}{
		{"Swimming Pool", "Olympic size swimming pool with separate kids area", 50, "pool"},
		{"Gym", "Fully equipped gym with modern fitness equipment", 30, "fitness_center"},
		{"Parking", "Covered parking with 24/7 security", 100, "local_parking"},
		{"Club House", "Multi-purpose club house for events and gatherings", 80, "home"},
		{"Tennis Court", "Professional tennis court with lighting", 4, "sports_tennis"},
		{"Kids Play Area", "Safe and fun play area for children", 20, "child_care"},
	}
	amenityIDs := make([]int64, len(amenities))
	for i, a := range amenities {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO amenities (name, description, capacity, available, icon)
			 VALUES ($1, $2, $3, true, $4) RETURNING id`,
			a.name, a.desc, a.capacity, a.icon,
		).Scan(&amenityIDs[i]); err != nil {
			return fmt.Errorf("seed amenity failed: %w", err)
		}
	}

	var leaseID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO leases (unit_id, tenant_id, start_date, end_date, rent_amount, security_deposit, status)
		 VALUES ($1, $2, '2024-01-01', '2024-12-31', 1000, 2000, 'active') RETURNING id`,
		unitIDs[2], johnID).Scan(&leaseID); err != nil {
		return fmt.Errorf("seed lease failed: %w", err)
	}

	payments := []struct {
		date   string
		method string
		txn    string
	}{
		{"2024-01-05", "Credit Card", "TXN001"},
		{"2024-02-05", "Bank Transfer", "TXN002"},
		{"2024-03-05", "Credit Card", "TXN003"},
	}
	for _, p := range payments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO payments (lease_id, amount, payment_date, payment_method, status, transaction_id)
			 VALUES ($1, 1000, $2, $3, 'completed', $4)`,
			leaseID, p.date, p.method, p.txn); err != nil {
			return fmt.Errorf("seed payment failed: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, amenity_id, booking_date, start_time, end_time, status, notes)
		 VALUES ($1, $2, CURRENT_DATE, '10:00', '11:00', 'approved', 'Morning swim session'),
		        ($3, $4, CURRENT_DATE, '18:00', '19:00', 'pending', 'Evening workout')`,
		johnID, amenityIDs[0], janeID, amenityIDs[1]); err != nil {
		return fmt.Errorf("seed booking failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit failed: %w", err)
	}

	logger.Info("database seeded")
	return nil
}

func seedUser(ctx context.Context, tx *sql.Tx, email, password, fullName, phone, role string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("seed user hash failed: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, full_name, phone, role)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		email, string(hash), fullName, phone, role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed user failed: %w", err)
	}
	return id, nil
}
