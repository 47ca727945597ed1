package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique index.
const uniqueViolation = "23505"

// activeReservationIndex is the partial unique index that backs the
// one-active-reservation-per-spot invariant:
//
//	CREATE UNIQUE INDEX reservations_one_active_per_spot
//	ON reservations (spot_id) WHERE status = 'active';
const activeReservationIndex = "reservations_one_active_per_spot"

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

func (r *ReservationRepository) FindReservation(ctx context.Context, id int) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, customer_id, vehicle_id, spot_id, entry_time, expected_exit_time, exit_time, total_amount, status, created_at, updated_at
		FROM reservations WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.CustomerID, &res.VehicleID, &res.SpotID, &res.EntryTime,
		&res.ExpectedExitTime, &res.ExitTime, &res.TotalAmount, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrReservationNotFound
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return &res, nil
}

// InsertReservation writes a new reservation and assigns its id. A unique
// violation on the active-per-spot index means a concurrent writer won the
// race for this spot and surfaces as ErrDuplicateActiveReservation.
func (r *ReservationRepository) InsertReservation(ctx context.Context, res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(customer_id, vehicle_id, spot_id, entry_time, expected_exit_time, exit_time, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		res.CustomerID,
		res.VehicleID,
		res.SpotID,
		res.EntryTime,
		res.ExpectedExitTime,
		res.ExitTime,
		res.TotalAmount,
		res.Status,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicateActiveReservation
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, res *db.Reservation) error {
	query := `
		UPDATE reservations
		SET exit_time = $2, total_amount = $3, status = $4, updated_at = $5
		WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, res.ID, res.ExitTime, res.TotalAmount, res.Status, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error updating reservation %d: %w", res.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for reservation %d: %w", res.ID, err)
	}
	if rows == 0 {
		return db.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) FindActiveReservationBySpot(ctx context.Context, spotID int) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, customer_id, vehicle_id, spot_id, entry_time, expected_exit_time, exit_time, total_amount, status, created_at, updated_at
		FROM reservations WHERE spot_id = $1 AND status = 'active'`
	err := r.DB.QueryRowContext(ctx, query, spotID).Scan(
		&res.ID, &res.CustomerID, &res.VehicleID, &res.SpotID, &res.EntryTime,
		&res.ExpectedExitTime, &res.ExitTime, &res.TotalAmount, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying active reservation for spot %d: %w", spotID, err)
	}
	return &res, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context, date, status string) ([]db.Reservation, error) {
	query := `
	SELECT id, customer_id, vehicle_id, spot_id, entry_time, expected_exit_time, exit_time, total_amount, status, created_at, updated_at
	FROM reservations WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND DATE(entry_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY entry_time DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(
			&res.ID, &res.CustomerID, &res.VehicleID, &res.SpotID, &res.EntryTime,
			&res.ExpectedExitTime, &res.ExitTime, &res.TotalAmount, &res.Status,
			&res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return reservations, nil
}
