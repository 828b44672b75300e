package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresUnitRepository implements domain.UnitRepository using PostgreSQL.
type PostgresUnitRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUnitRepository creates a new unit repository.
func NewPostgresUnitRepository(db *sql.DB, logger *slog.Logger) *PostgresUnitRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUnitRepository{db: db, logger: logger}
}

const unitSelect = `
	SELECT u.id, u.tower_id, u.unit_number, u.floor, u.bedrooms, u.bathrooms,
	       u.area_sqft, u.rent_amount, u.status, u.description, u.image_url,
	       u.created_at, t.name
	FROM units u
	LEFT JOIN towers t ON t.id = u.tower_id
`

func scanUnit(row interface{ Scan(...any) error }) (*domain.Unit, error) {
	unit := &domain.Unit{}
	var towerName sql.NullString

	err := row.Scan(
		&unit.ID,
		&unit.TowerID,
		&unit.UnitNumber,
		&unit.Floor,
		&unit.Bedrooms,
		&unit.Bathrooms,
		&unit.AreaSqft,
		&unit.RentAmount,
		&unit.Status,
		&unit.Description,
		&unit.ImageURL,
		&unit.CreatedAt,
		&towerName,
	)
	if err != nil {
		return nil, err
	}

	if towerName.Valid {
		unit.TowerName = &towerName.String
	}
	return unit, nil
}

func (r *PostgresUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	if unit.Status == "" {
		unit.Status = domain.UnitAvailable
	}

	query := `
		INSERT INTO units (tower_id, unit_number, floor, bedrooms, bathrooms,
		                   area_sqft, rent_amount, status, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		unit.TowerID,
		unit.UnitNumber,
		unit.Floor,
		unit.Bedrooms,
		unit.Bathrooms,
		unit.AreaSqft,
		unit.RentAmount,
		unit.Status,
		unit.Description,
		unit.ImageURL,
	).Scan(&unit.ID, &unit.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create unit",
			slog.String("unit_number", unit.UnitNumber),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

func (r *PostgresUnitRepository) GetByID(ctx context.Context, id int64) (*domain.Unit, error) {
	unit, err := scanUnit(r.db.QueryRowContext(ctx, unitSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	return unit, nil
}

func (r *PostgresUnitRepository) Update(ctx context.Context, unit *domain.Unit) error {
	query := `
		UPDATE units
		SET tower_id = $1, unit_number = $2, floor = $3, bedrooms = $4,
		    bathrooms = $5, area_sqft = $6, rent_amount = $7, status = $8,
		    description = $9, image_url = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		unit.TowerID,
		unit.UnitNumber,
		unit.Floor,
		unit.Bedrooms,
		unit.Bathrooms,
		unit.AreaSqft,
		unit.RentAmount,
		unit.Status,
		unit.Description,
		unit.ImageURL,
		unit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
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

func (r *PostgresUnitRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
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

// List returns units matching the filter; zero filter values match
// everything.
func (r *PostgresUnitRepository) List(ctx context.Context, filter domain.UnitFilter) ([]*domain.Unit, error) {
	query := unitSelect + ` WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND u.status = $` + strconv.Itoa(len(args))
	}
	if filter.TowerID != 0 {
		args = append(args, filter.TowerID)
		query += ` AND u.tower_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list units", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := []*domain.Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}
