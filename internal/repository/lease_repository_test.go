package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rentalhub/internal/domain"
)

func newLeaseRepoMock(t *testing.T) (*PostgresLeaseRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresLeaseRepository(db, nil), mock
}

func testLease(unitID int64) *domain.Lease {
	return &domain.Lease{
		UnitID:          unitID,
		TenantID:        3,
		StartDate:       domain.Date(2025, time.January, 1),
		EndDate:         domain.Date(2025, time.December, 31),
		RentAmount:      1500,
		SecurityDeposit: 3000,
	}
}

func TestLeaseCreateOccupiesUnitInSameTransaction(t *testing.T) {
	repo, mock := newLeaseRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE units SET status = $1 WHERE id = $2`)).
		WithArgs(domain.UnitOccupied, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leases`)).
		WithArgs(int64(7), int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), 1500.0, 3000.0, domain.LeaseActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))
	mock.ExpectCommit()

	lease := testLease(7)
	require.NoError(t, repo.Create(context.Background(), lease))

	assert.Equal(t, int64(11), lease.ID)
	assert.Equal(t, domain.LeaseActive, lease.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseCreateSkipsStatusForMissingUnit(t *testing.T) {
	repo, mock := newLeaseRepoMock(t)

	// The UPDATE matches zero rows, the lease is still written.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE units SET status = $1 WHERE id = $2`)).
		WithArgs(domain.UnitOccupied, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leases`)).
		WithArgs(int64(404), int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), 1500.0, 3000.0, domain.LeaseActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	mock.ExpectCommit()

	lease := testLease(404)
	require.NoError(t, repo.Create(context.Background(), lease))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseCreateRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newLeaseRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE units SET status = $1 WHERE id = $2`)).
		WithArgs(domain.UnitOccupied, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leases`)).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), testLease(7))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseDeleteReleasesUnitInSameTransaction(t *testing.T) {
	repo, mock := newLeaseRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE units SET status = $1 WHERE id = (SELECT unit_id FROM leases WHERE id = $2)`)).
		WithArgs(domain.UnitAvailable, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leases WHERE id = $1`)).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseDeleteUnknownLease(t *testing.T) {
	repo, mock := newLeaseRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE units SET status = $1 WHERE id = (SELECT unit_id FROM leases WHERE id = $2)`)).
		WithArgs(domain.UnitAvailable, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leases WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
