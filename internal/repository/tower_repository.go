package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresTowerRepository implements domain.TowerRepository using PostgreSQL.
type PostgresTowerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTowerRepository creates a new tower repository.
func NewPostgresTowerRepository(db *sql.DB, logger *slog.Logger) *PostgresTowerRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTowerRepository{db: db, logger: logger}
}

func (r *PostgresTowerRepository) Create(ctx context.Context, tower *domain.Tower) error {
	query := `
		INSERT INTO towers (name, address, total_floors)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		tower.Name,
		tower.Address,
		tower.TotalFloors,
	).Scan(&tower.ID, &tower.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create tower",
			slog.String("name", tower.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create tower: %w", err)
	}

	return nil
}

func (r *PostgresTowerRepository) GetByID(ctx context.Context, id int64) (*domain.Tower, error) {
	tower := &domain.Tower{}

	query := `
		SELECT t.id, t.name, t.address, t.total_floors, t.created_at,
		       (SELECT COUNT(*) FROM units u WHERE u.tower_id = t.id)
		FROM towers t
		WHERE t.id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tower.ID,
		&tower.Name,
		&tower.Address,
		&tower.TotalFloors,
		&tower.CreatedAt,
		&tower.TotalUnits,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tower: %w", err)
	}

	return tower, nil
}

func (r *PostgresTowerRepository) Update(ctx context.Context, tower *domain.Tower) error {
	query := `
		UPDATE towers
		SET name = $1, address = $2, total_floors = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query,
		tower.Name,
		tower.Address,
		tower.TotalFloors,
		tower.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tower: %w", err)
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

// Delete removes a tower; its units go with it via the FK cascade.
func (r *PostgresTowerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM towers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tower: %w", err)
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

func (r *PostgresTowerRepository) List(ctx context.Context) ([]*domain.Tower, error) {
	query := `
		SELECT t.id, t.name, t.address, t.total_floors, t.created_at,
		       (SELECT COUNT(*) FROM units u WHERE u.tower_id = t.id)
		FROM towers t
		ORDER BY t.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list towers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list towers: %w", err)
	}
	defer rows.Close()

	towers := []*domain.Tower{}
	for rows.Next() {
		tower := &domain.Tower{}
		err := rows.Scan(
			&tower.ID,
			&tower.Name,
			&tower.Address,
			&tower.TotalFloors,
			&tower.CreatedAt,
			&tower.TotalUnits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tower: %w", err)
		}
		towers = append(towers, tower)
	}

	return towers, rows.Err()
}
