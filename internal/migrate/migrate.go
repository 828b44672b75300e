package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Schema statements are idempotent so Up can run at every process start.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name     VARCHAR(100) NOT NULL,
		phone         VARCHAR(20) NOT NULL DEFAULT '',
		role          VARCHAR(20) NOT NULL DEFAULT 'resident',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS towers (
		id           BIGSERIAL PRIMARY KEY,
		name         VARCHAR(100) NOT NULL,
		address      VARCHAR(255) NOT NULL,
		total_floors INTEGER NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS units (
		id          BIGSERIAL PRIMARY KEY,
		tower_id    BIGINT NOT NULL REFERENCES towers(id) ON DELETE CASCADE,
		unit_number VARCHAR(20) NOT NULL,
		floor       INTEGER NOT NULL,
		bedrooms    INTEGER NOT NULL,
		bathrooms   INTEGER NOT NULL,
		area_sqft   DOUBLE PRECISION NOT NULL,
		rent_amount DOUBLE PRECISION NOT NULL,
		status      VARCHAR(20) NOT NULL DEFAULT 'available',
		description TEXT NOT NULL DEFAULT '',
		image_url   VARCHAR(255) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS amenities (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		capacity    INTEGER NOT NULL DEFAULT 0,
		available   BOOLEAN NOT NULL DEFAULT true,
		icon        VARCHAR(50) NOT NULL DEFAULT '',
		image_url   VARCHAR(255) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id),
		amenity_id   BIGINT NOT NULL REFERENCES amenities(id),
		booking_date DATE NOT NULL,
		start_time   TIME NOT NULL,
		end_time     TIME NOT NULL,
		status       VARCHAR(20) NOT NULL DEFAULT 'pending',
		notes        TEXT NOT NULL DEFAULT '',
		admin_notes  TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS leases (
		id               BIGSERIAL PRIMARY KEY,
		unit_id          BIGINT NOT NULL REFERENCES units(id) ON DELETE CASCADE,
		tenant_id        BIGINT NOT NULL REFERENCES users(id),
		start_date       DATE NOT NULL,
		end_date         DATE NOT NULL,
		rent_amount      DOUBLE PRECISION NOT NULL,
		security_deposit DOUBLE PRECISION NOT NULL,
		status           VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             BIGSERIAL PRIMARY KEY,
		lease_id       BIGINT NOT NULL REFERENCES leases(id) ON DELETE CASCADE,
		amount         DOUBLE PRECISION NOT NULL,
		payment_date   DATE NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT '',
		status         VARCHAR(20) NOT NULL DEFAULT 'pending',
		transaction_id VARCHAR(100) NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_units_tower_id ON units(tower_id)`,
	`CREATE INDEX IF NOT EXISTS idx_units_status ON units(status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leases_tenant_id ON leases(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_lease_id ON payments(lease_id)`,
}

// Up applies the schema. Safe to run repeatedly.
func Up(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	logger.Info("schema migrated", slog.Int("statements", len(statements)))
	return nil
}
