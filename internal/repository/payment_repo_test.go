package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
)

func TestInsertPaymentTranslatesUniqueViolation(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewPaymentRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	payment := &db.Payment{
		ReservationID: 3,
		Amount:        12.50,
		Method:        db.PaymentMethodCash,
		Status:        db.PaymentStatusPaid,
	}
	err = repo.InsertPayment(context.Background(), payment)
	assert.True(t, errors.Is(err, db.ErrDuplicatePayment),
		"a reservation carries at most one payment")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaymentByReservationNone(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewPaymentRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE reservation_id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_id", "amount", "method", "status",
			"stripe_session_id", "created_at", "updated_at",
		}))

	payment, err := repo.FindPaymentByReservation(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, payment)
	require.NoError(t, mock.ExpectationsWereMet())
}
