package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
)

var reservationColumns = []string{
	"id", "customer_id", "vehicle_id", "spot_id", "entry_time",
	"expected_exit_time", "exit_time", "total_amount", "status",
	"created_at", "updated_at",
}

func TestInsertReservationTranslatesUniqueViolation(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewReservationRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: activeReservationIndex})

	res := &db.Reservation{
		CustomerID: 1,
		VehicleID:  1,
		SpotID:     7,
		EntryTime:  time.Now().UTC(),
		Status:     db.ReservationStatusActive,
	}
	err = repo.InsertReservation(context.Background(), res)
	assert.True(t, errors.Is(err, db.ErrDuplicateActiveReservation),
		"a unique violation means a concurrent writer already holds the spot")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReservationAssignsID(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewReservationRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	res := &db.Reservation{
		CustomerID: 1,
		VehicleID:  1,
		SpotID:     7,
		EntryTime:  time.Now().UTC(),
		Status:     db.ReservationStatusActive,
	}
	require.NoError(t, repo.InsertReservation(context.Background(), res))
	assert.Equal(t, 12, res.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindReservationNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewReservationRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err = repo.FindReservation(context.Background(), 42)
	assert.True(t, errors.Is(err, db.ErrReservationNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveReservationBySpotNone(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewReservationRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE spot_id = $1 AND status = 'active'")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	res, err := repo.FindActiveReservationBySpot(context.Background(), 7)
	require.NoError(t, err, "no active reservation is not an error")
	assert.Nil(t, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewReservationRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now().UTC()
	amount := 10.0
	res := &db.Reservation{
		ID:          42,
		ExitTime:    &now,
		TotalAmount: &amount,
		Status:      db.ReservationStatusCompleted,
		UpdatedAt:   now,
	}
	err = repo.UpdateReservation(context.Background(), res)
	assert.True(t, errors.Is(err, db.ErrReservationNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
