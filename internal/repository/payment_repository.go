package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentalhub/internal/domain"
)

// PostgresPaymentRepository implements domain.PaymentRepository using
// PostgreSQL.
type PostgresPaymentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPaymentRepository creates a new payment repository.
func NewPostgresPaymentRepository(db *sql.DB, logger *slog.Logger) *PostgresPaymentRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaymentRepository{db: db, logger: logger}
}

const paymentColumns = `id, lease_id, amount, payment_date, payment_method, status, transaction_id, notes, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	payment := &domain.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.LeaseID,
		&payment.Amount,
		&payment.PaymentDate,
		&payment.PaymentMethod,
		&payment.Status,
		&payment.TransactionID,
		&payment.Notes,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	query := `
		INSERT INTO payments (lease_id, amount, payment_date, payment_method,
		                      status, transaction_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		payment.LeaseID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.Status,
		payment.TransactionID,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		r.logger.Error("failed to create payment",
			slog.Int64("lease_id", payment.LeaseID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

func (r *PostgresPaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

// ListByTenant returns payments belonging to the tenant's leases.
func (r *PostgresPaymentRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	query := `
		SELECT p.id, p.lease_id, p.amount, p.payment_date, p.payment_method,
		       p.status, p.transaction_id, p.notes, p.created_at
		FROM payments p
		JOIN leases l ON l.id = p.lease_id
		WHERE l.tenant_id = $1
		ORDER BY p.id
	`
	return r.list(ctx, query, tenantID)
}

func (r *PostgresPaymentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list payments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
