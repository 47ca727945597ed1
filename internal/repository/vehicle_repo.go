package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (customer_id, plate, model, category, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, v.CustomerID, v.Plate, v.Model, v.Category).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicatePlate
		}
		return fmt.Errorf("error inserting vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindVehicle(ctx context.Context, id int) (*db.Vehicle, error) {
	var v db.Vehicle
	query := `SELECT id, customer_id, plate, model, category, created_at FROM vehicles WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.CustomerID, &v.Plate, &v.Model, &v.Category, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *VehicleRepository) ListVehiclesByCustomer(ctx context.Context, customerID int) ([]db.Vehicle, error) {
	query := `SELECT id, customer_id, plate, model, category, created_at FROM vehicles WHERE customer_id = $1 ORDER BY plate`
	rows, err := r.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.Plate, &v.Model, &v.Category, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, id, customerID int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1 AND customer_id = $2`, id, customerID)
	if err != nil {
		return fmt.Errorf("error deleting vehicle %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for vehicle %d: %w", id, err)
	}
	if rows == 0 {
		return db.ErrVehicleNotFound
	}
	return nil
}
