package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

// InsertPayment writes a payment record. The unique index on reservation_id
// enforces the at-most-one-payment-per-reservation invariant; a violation
// surfaces as ErrDuplicatePayment.
func (r *PaymentRepository) InsertPayment(ctx context.Context, p *db.Payment) error {
	query := `
		INSERT INTO payments (reservation_id, amount, method, status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, p.ReservationID, p.Amount, p.Method, p.Status, p.StripeSessionID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicatePayment
		}
		return fmt.Errorf("error inserting payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindPaymentByReservation(ctx context.Context, reservationID int) (*db.Payment, error) {
	var p db.Payment
	query := `
		SELECT id, reservation_id, amount, method, status, stripe_session_id, created_at, updated_at
		FROM payments WHERE reservation_id = $1`
	err := r.DB.QueryRowContext(ctx, query, reservationID).Scan(
		&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.StripeSessionID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying payment for reservation %d: %w", reservationID, err)
	}
	return &p, nil
}

func (r *PaymentRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating payment %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for payment %d: %w", id, err)
	}
	if rows == 0 {
		return db.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) UpdatePaymentStatusBySessionID(ctx context.Context, sessionID, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = $2, updated_at = NOW() WHERE stripe_session_id = $1`, sessionID, status)
	if err != nil {
		return fmt.Errorf("error updating payment for session %s: %w", sessionID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for session %s: %w", sessionID, err)
	}
	if rows == 0 {
		return fmt.Errorf("no payment found for session %s", sessionID)
	}
	return nil
}
