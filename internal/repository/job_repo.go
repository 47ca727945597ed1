package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetOverdueActiveReservationIDs returns ids of active reservations whose
// expected exit passed before the cutoff.
func (r *JobRepository) GetOverdueActiveReservationIDs(ctx context.Context, cutoff time.Time) ([]int, error) {
	query := `SELECT id FROM reservations WHERE status = 'active' AND expected_exit_time IS NOT NULL AND expected_exit_time < $1`
	rows, err := r.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue reservations: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// ExpirePendingPayments writes off pending payments whose checkout was
// abandoned. Payments already paid are left untouched.
func (r *JobRepository) ExpirePendingPayments(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE payments SET status = 'expired', updated_at = NOW() WHERE id = ANY($1) AND status = 'pending'`
	result, err := r.DB.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error expiring pending payments: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Expired %d pending payments", rowsAffected)
	}
	return nil
}

// GetStalePendingPaymentIDs returns pending online payments created before
// the cutoff whose checkout session was never completed.
func (r *JobRepository) GetStalePendingPaymentIDs(ctx context.Context, cutoff time.Time) ([]int, error) {
	query := `SELECT id FROM payments WHERE status = 'pending' AND method = 'online' AND created_at < $1`
	rows, err := r.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending payments: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning payment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}
