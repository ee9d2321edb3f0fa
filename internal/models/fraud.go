package models

// Risk level labels assigned by the fraud_risk_dashboard view.
const (
	RiskLevelCritical = "CRITICAL"
	RiskLevelHigh     = "HIGH"
)

// FraudRiskRow is one row of the externally computed fraud_risk_dashboard view.
type FraudRiskRow struct {
	CustomerID      int64   `db:"customer_id" json:"customer_id"`
	Name            string  `db:"name" json:"name"`
	City            string  `db:"city" json:"city"`
	FraudScore      float64 `db:"fraud_score" json:"fraud_score"`
	RiskLevel       string  `db:"risk_level" json:"risk_level"`
	LastReadingDate string  `db:"last_reading_date" json:"last_reading_date"`
	UnitsConsumed   float64 `db:"units_consumed" json:"units_consumed"`
	MeterType       string  `db:"meter_type" json:"meter_type"`
}

// CriticalCase is a fraud risk row annotated with the synthesized anomaly label.
type CriticalCase struct {
	FraudRiskRow
	AnomalyTypes string `json:"anomaly_types"`
}

// DashboardMetrics is the headline metrics payload for the dashboard.
type DashboardMetrics struct {
	TotalCustomers int     `json:"totalCustomers"`
	CriticalCases  int     `json:"criticalCases"`
	HighRiskCases  int     `json:"highRiskCases"`
	AvgFraudScore  float64 `json:"avgFraudScore"`
	DetectionRate  string  `json:"detectionRate"`
}

// RiskBuckets holds per-tier customer counts for the risk distribution chart.
type RiskBuckets struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}
