package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(database *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: database}
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, c *db.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return db.ErrDuplicateCustomer
		}
		return fmt.Errorf("error inserting customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindCustomer(ctx context.Context, id int) (*db.Customer, error) {
	var c db.Customer
	query := `SELECT id, name, email, phone, created_at FROM customers WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("error querying customer %d: %w", id, err)
	}
	return &c, nil
}
