package repository

import (
	"context"
	"database/sql"

	"fraudwatch/internal/models"
)

// FraudDashboardRepository reads the externally maintained fraud_risk_dashboard view.
type FraudDashboardRepository struct {
	db *sql.DB
}

// NewFraudDashboardRepository returns repository.
func NewFraudDashboardRepository(db *sql.DB) *FraudDashboardRepository {
	return &FraudDashboardRepository{db: db}
}

// CountByRiskLevel returns the number of view rows carrying the given risk level.
func (r *FraudDashboardRepository) CountByRiskLevel(ctx context.Context, riskLevel string) (int, error) {
	const query = `SELECT COUNT(*) FROM fraud_risk_dashboard WHERE risk_level = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, riskLevel).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// AverageScore returns the mean fraud score across the view, 0 when the view is empty.
func (r *FraudDashboardRepository) AverageScore(ctx context.Context) (float64, error) {
	const query = `SELECT AVG(fraud_score) FROM fraud_risk_dashboard`

	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query).Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// TopCases returns up to limit CRITICAL/HIGH rows ordered by fraud score descending.
func (r *FraudDashboardRepository) TopCases(ctx context.Context, limit int) ([]models.FraudRiskRow, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT customer_id, name, city, fraud_score, risk_level,
		       reading_month::text AS last_reading_date, units_consumed, meter_type
		FROM fraud_risk_dashboard
		WHERE risk_level IN ($1, $2)
		ORDER BY fraud_score DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, models.RiskLevelCritical, models.RiskLevelHigh, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []models.FraudRiskRow
	for rows.Next() {
		var c models.FraudRiskRow
		if err := rows.Scan(
			&c.CustomerID,
			&c.Name,
			&c.City,
			&c.FraudScore,
			&c.RiskLevel,
			&c.LastReadingDate,
			&c.UnitsConsumed,
			&c.MeterType,
		); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// TierCounts aggregates risk tiers over the whole view in one pass. Medium is the
// band of rows outside CRITICAL/HIGH whose score falls in [60, 75).
func (r *FraudDashboardRepository) TierCounts(ctx context.Context) (critical, high, medium int, err error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE risk_level = $1),
			COUNT(*) FILTER (WHERE risk_level = $2),
			COUNT(*) FILTER (WHERE risk_level NOT IN ($1, $2) AND fraud_score >= 60 AND fraud_score < 75)
		FROM fraud_risk_dashboard
	`
	err = r.db.QueryRowContext(ctx, query, models.RiskLevelCritical, models.RiskLevelHigh).
		Scan(&critical, &high, &medium)
	if err != nil {
		return 0, 0, 0, err
	}
	return critical, high, medium, nil
}
