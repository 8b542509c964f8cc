package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tablebook/infras/otel/mocks"
	"tablebook/infras/postgres"
	"tablebook/internal/domains/table/repository"
	gRepo "tablebook/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	updateTableQuery       = `UPDATE tables SET reservation_id = \$1, updated_at = \$2\s+WHERE \(tables\.table_id = \$3\)\s+RETURNING table_id, table_name, capacity, reservation_id, created_at, updated_at`
	updateReservationQuery = `UPDATE reservations SET status = \$1, updated_at = \$2\s+WHERE \(reservations\.reservation_id = \$3\)`
)

var tableColumns = []string{"table_id", "table_name", "capacity", "reservation_id", "created_at", "updated_at"}

func newRepository(t *testing.T) (repository.Table, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}
	otel := mocks.NewOtel()

	return repository.New(conn, gRepo.NewTransactor(conn, otel), otel), mock
}

func TestAssignReservationCommitsBothWrites(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(updateTableQuery).
		WithArgs(int64(5), sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(int64(7), "#7", 4, int64(5), now, now))
	mock.ExpectExec(updateReservationQuery).
		WithArgs("seated", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	table, err := repo.AssignReservation(context.Background(), 7, 5)

	require.NoError(t, err)
	require.NotNil(t, table.ReservationID)
	assert.Equal(t, int64(5), *table.ReservationID)
	assert.Equal(t, int64(7), table.TableID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignReservationRollsBackWhenReservationWriteFails(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()
	diskFull := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(updateTableQuery).
		WithArgs(int64(5), sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(int64(7), "#7", 4, int64(5), now, now))
	mock.ExpectExec(updateReservationQuery).
		WithArgs("seated", sqlmock.AnyArg(), int64(5)).
		WillReturnError(diskFull)
	mock.ExpectRollback()

	table, err := repo.AssignReservation(context.Background(), 7, 5)

	require.ErrorIs(t, err, diskFull)
	assert.Zero(t, table.TableID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignReservationRollsBackWhenReservationIsGone(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(updateTableQuery).
		WithArgs(int64(5), sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(int64(7), "#7", 4, int64(5), now, now))
	mock.ExpectExec(updateReservationQuery).
		WithArgs("seated", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.AssignReservation(context.Background(), 7, 5)

	require.ErrorIs(t, err, gRepo.ErrNotUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishClearsTableAndFinishesReservation(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(updateTableQuery).
		WithArgs(nil, sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(int64(7), "#7", 4, nil, now, now))
	mock.ExpectExec(updateReservationQuery).
		WithArgs("finished", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	table, err := repo.Finish(context.Background(), 7, 5)

	require.NoError(t, err)
	assert.Nil(t, table.ReservationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishRollsBackWhenTableIsGone(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(updateTableQuery).
		WithArgs(nil, sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns))
	mock.ExpectRollback()

	_, err := repo.Finish(context.Background(), 7, 5)

	require.ErrorIs(t, err, gRepo.ErrNotUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}
