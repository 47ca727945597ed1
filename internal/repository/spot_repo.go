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

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(database *sql.DB) *SpotRepository {
	return &SpotRepository{DB: database}
}

func (r *SpotRepository) FindSpot(ctx context.Context, id int) (*db.ParkingSpot, error) {
	var spot db.ParkingSpot
	query := `
		SELECT id, number, category, hourly_price, status, created_at, updated_at
		FROM parking_spots WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&spot.ID, &spot.Number, &spot.Category, &spot.HourlyPrice, &spot.Status,
		&spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrSpotNotFound
		}
		return nil, fmt.Errorf("error querying spot %d: %w", id, err)
	}
	return &spot, nil
}

func (r *SpotRepository) UpdateSpotStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE parking_spots SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating status of spot %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for spot %d: %w", id, err)
	}
	if rows == 0 {
		return db.ErrSpotNotFound
	}
	return nil
}

// UpdateSpotStatusIf flips the status only when the current status matches
// from, in one statement. Returns false when the spot was in another status.
func (r *SpotRepository) UpdateSpotStatusIf(ctx context.Context, id int, from, to string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE parking_spots SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("error updating status of spot %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected for spot %d: %w", id, err)
	}
	return rows > 0, nil
}

func (r *SpotRepository) CreateSpot(ctx context.Context, spot *db.ParkingSpot) error {
	query := `
		INSERT INTO parking_spots (number, category, hourly_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, spot.Number, spot.Category, spot.HourlyPrice, spot.Status).
		Scan(&spot.ID, &spot.CreatedAt, &spot.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicateSpot
		}
		return fmt.Errorf("error inserting spot: %w", err)
	}
	return nil
}

func (r *SpotRepository) UpdateSpot(ctx context.Context, spot *db.ParkingSpot) error {
	query := `
		UPDATE parking_spots
		SET number = $2, category = $3, hourly_price = $4, updated_at = NOW()
		WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, spot.ID, spot.Number, spot.Category, spot.HourlyPrice)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicateSpot
		}
		return fmt.Errorf("error updating spot %d: %w", spot.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for spot %d: %w", spot.ID, err)
	}
	if rows == 0 {
		return db.ErrSpotNotFound
	}
	return nil
}

func (r *SpotRepository) ListSpots(ctx context.Context, status string) ([]db.ParkingSpot, error) {
	query := `
	SELECT id, number, category, hourly_price, status, created_at, updated_at
	FROM parking_spots WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var spot db.ParkingSpot
		err := rows.Scan(&spot.ID, &spot.Number, &spot.Category, &spot.HourlyPrice, &spot.Status,
			&spot.CreatedAt, &spot.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning spot row: %w", err)
		}
		spots = append(spots, spot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}
	return spots, nil
}
