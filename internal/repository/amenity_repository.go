package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresAmenityRepository implements domain.AmenityRepository using
// PostgreSQL.
type PostgresAmenityRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAmenityRepository creates a new amenity repository.
func NewPostgresAmenityRepository(db *sql.DB, logger *slog.Logger) *PostgresAmenityRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAmenityRepository{db: db, logger: logger}
}

const amenityColumns = `id, name, description, capacity, available, icon, image_url, created_at`

func (r *PostgresAmenityRepository) Create(ctx context.Context, amenity *domain.Amenity) error {
	query := `
		INSERT INTO amenities (name, description, capacity, available, icon, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		amenity.Name,
		amenity.Description,
		amenity.Capacity,
		amenity.Available,
		amenity.Icon,
		amenity.ImageURL,
	).Scan(&amenity.ID, &amenity.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create amenity",
			slog.String("name", amenity.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create amenity: %w", err)
	}

	return nil
}

func (r *PostgresAmenityRepository) GetByID(ctx context.Context, id int64) (*domain.Amenity, error) {
	amenity := &domain.Amenity{}

	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&amenity.ID,
		&amenity.Name,
		&amenity.Description,
		&amenity.Capacity,
		&amenity.Available,
		&amenity.Icon,
		&amenity.ImageURL,
		&amenity.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get amenity: %w", err)
	}

	return amenity, nil
}

func (r *PostgresAmenityRepository) Update(ctx context.Context, amenity *domain.Amenity) error {
	query := `
		UPDATE amenities
		SET name = $1, description = $2, capacity = $3, available = $4,
		    icon = $5, image_url = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		amenity.Name,
		amenity.Description,
		amenity.Capacity,
		amenity.Available,
		amenity.Icon,
		amenity.ImageURL,
		amenity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update amenity: %w", err)
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

func (r *PostgresAmenityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete amenity: %w", err)
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

func (r *PostgresAmenityRepository) List(ctx context.Context) ([]*domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list amenities", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	defer rows.Close()

	amenities := []*domain.Amenity{}
	for rows.Next() {
		amenity := &domain.Amenity{}
		err := rows.Scan(
			&amenity.ID,
			&amenity.Name,
			&amenity.Description,
			&amenity.Capacity,
			&amenity.Available,
			&amenity.Icon,
			&amenity.ImageURL,
			&amenity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan amenity: %w", err)
		}
		amenities = append(amenities, amenity)
	}

	return amenities, rows.Err()
}
