package repository

import (
	"context"
	"database/sql"
	"errors"
)

// CustomerRepository handles reads against the customers table.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository returns repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Count returns the total number of customers.
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM customers`

	var total int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Exists reports whether the customer id is known.
func (r *CustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	const query = `SELECT customer_id FROM customers WHERE customer_id = $1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
