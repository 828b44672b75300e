package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresLeaseRepository implements domain.LeaseRepository using
// PostgreSQL.
type PostgresLeaseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresLeaseRepository creates a new lease repository.
func NewPostgresLeaseRepository(db *sql.DB, logger *slog.Logger) *PostgresLeaseRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLeaseRepository{db: db, logger: logger}
}

const leaseSelect = `
	SELECT l.id, l.unit_id, l.tenant_id, l.start_date, l.end_date,
	       l.rent_amount, l.security_deposit, l.status, l.created_at,
	       un.unit_number, t.name, u.full_name, u.email
	FROM leases l
	LEFT JOIN units un ON un.id = l.unit_id
	LEFT JOIN towers t ON t.id = un.tower_id
	LEFT JOIN users u ON u.id = l.tenant_id
`

func scanLease(row interface{ Scan(...any) error }) (*domain.Lease, error) {
	lease := &domain.Lease{}
	var unitNumber, towerName, tenantName, tenantEmail sql.NullString

	err := row.Scan(
		&lease.ID,
		&lease.UnitID,
		&lease.TenantID,
		&lease.StartDate,
		&lease.EndDate,
		&lease.RentAmount,
		&lease.SecurityDeposit,
		&lease.Status,
		&lease.CreatedAt,
		&unitNumber,
		&towerName,
		&tenantName,
		&tenantEmail,
	)
	if err != nil {
		return nil, err
	}

	if unitNumber.Valid {
		lease.UnitNumber = &unitNumber.String
	}
	if towerName.Valid {
		lease.TowerName = &towerName.String
	}
	if tenantName.Valid {
		lease.TenantName = &tenantName.String
	}
	if tenantEmail.Valid {
		lease.TenantEmail = &tenantEmail.String
	}
	return lease, nil
}

// Create inserts the lease and marks its unit occupied in one transaction.
// When the unit does not exist the status UPDATE matches zero rows and the
// lease is written anyway; that gap is deliberate.
func (r *PostgresLeaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	if lease.Status == "" {
		lease.Status = domain.LeaseActive
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin lease create: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE units SET status = $1 WHERE id = $2`,
		domain.UnitOccupied, lease.UnitID,
	); err != nil {
		return fmt.Errorf("failed to mark unit occupied: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO leases (unit_id, tenant_id, start_date, end_date,
		                    rent_amount, security_deposit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		lease.UnitID,
		lease.TenantID,
		lease.StartDate,
		lease.EndDate,
		lease.RentAmount,
		lease.SecurityDeposit,
		lease.Status,
	).Scan(&lease.ID, &lease.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create lease",
			slog.Int64("unit_id", lease.UnitID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create lease: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lease create: %w", err)
	}

	return nil
}

func (r *PostgresLeaseRepository) GetByID(ctx context.Context, id int64) (*domain.Lease, error) {
	lease, err := scanLease(r.db.QueryRowContext(ctx, leaseSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}

	return lease, nil
}

func (r *PostgresLeaseRepository) Update(ctx context.Context, lease *domain.Lease) error {
	query := `
		UPDATE leases
		SET start_date = $1, end_date = $2, rent_amount = $3,
		    security_deposit = $4, status = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		lease.StartDate,
		lease.EndDate,
		lease.RentAmount,
		lease.SecurityDeposit,
		lease.Status,
		lease.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
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

// Delete removes the lease and marks its unit available again in one
// transaction; payments cascade via the FK. Same silent skip when the unit
// is already gone.
func (r *PostgresLeaseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin lease delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE units SET status = $1 WHERE id = (SELECT unit_id FROM leases WHERE id = $2)`,
		domain.UnitAvailable, id,
	); err != nil {
		return fmt.Errorf("failed to mark unit available: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM leases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lease delete: %w", err)
	}

	return nil
}

func (r *PostgresLeaseRepository) List(ctx context.Context) ([]*domain.Lease, error) {
	return r.list(ctx, leaseSelect+` ORDER BY l.id`)
}

func (r *PostgresLeaseRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Lease, error) {
	return r.list(ctx, leaseSelect+` WHERE l.tenant_id = $1 ORDER BY l.id`, tenantID)
}

func (r *PostgresLeaseRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Lease, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list leases", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	defer rows.Close()

	leases := []*domain.Lease{}
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		leases = append(leases, lease)
	}

	return leases, rows.Err()
}
