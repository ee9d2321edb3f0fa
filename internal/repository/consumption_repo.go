package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"fraudwatch/internal/models"
)

// ErrDuplicateReading indicates the customer already has a submission for the date.
var ErrDuplicateReading = errors.New("duplicate reading for customer and date")

const pgUniqueViolation = "23505"

// ConsumptionRepository persists meter submissions and consumption records.
type ConsumptionRepository struct {
	db *sql.DB
}

// NewConsumptionRepository returns repository.
func NewConsumptionRepository(db *sql.DB) *ConsumptionRepository {
	return &ConsumptionRepository{db: db}
}

// RecordReadingParams carries one new reading through the write path.
type RecordReadingParams struct {
	CustomerID    int64
	ReadingDate   time.Time
	UnitsConsumed float64
	MeterReading  int64
	BillAmount    float64
}

// RecordReading inserts the raw meter submission and the derived consumption
// record in a single transaction. previous_units is seeded from the customer's
// most recent consumption record inside the same transaction, 0 when none exists.
func (r *ConsumptionRepository) RecordReading(ctx context.Context, params RecordReadingParams) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertSubmission = `
		INSERT INTO electricity_consumption (customer_id, consumption_kwh, reading_date, meter_reading)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, insertSubmission,
		params.CustomerID,
		params.UnitsConsumed,
		params.ReadingDate,
		params.MeterReading,
	); err != nil {
		return translateUniqueViolation(err)
	}

	const latestUnits = `
		SELECT units_consumed FROM consumption
		WHERE customer_id = $1
		ORDER BY reading_month DESC
		LIMIT 1
	`
	var previousUnits float64
	err = tx.QueryRowContext(ctx, latestUnits, params.CustomerID).Scan(&previousUnits)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	const insertRecord = `
		INSERT INTO consumption (customer_id, reading_month, units_consumed, previous_units, bill_amount)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insertRecord,
		params.CustomerID,
		params.ReadingDate,
		params.UnitsConsumed,
		previousUnits,
		params.BillAmount,
	); err != nil {
		return translateUniqueViolation(err)
	}

	return tx.Commit()
}

// RecentSubmissions returns the newest meter submissions joined with customer names.
func (r *ConsumptionRepository) RecentSubmissions(ctx context.Context, limit int) ([]models.MeterSubmission, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT ec.consumption_id, ec.customer_id, c.name, ec.consumption_kwh,
		       ec.reading_date::text, ec.meter_reading, ec.created_at
		FROM electricity_consumption ec
		JOIN customers c ON ec.customer_id = c.customer_id
		ORDER BY ec.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []models.MeterSubmission
	for rows.Next() {
		var s models.MeterSubmission
		if err := rows.Scan(
			&s.ConsumptionID,
			&s.CustomerID,
			&s.Name,
			&s.ConsumptionKWh,
			&s.ReadingDate,
			&s.MeterReading,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateReading
	}
	return err
}
