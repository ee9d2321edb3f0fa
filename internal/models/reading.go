package models

import "time"

// ConsumptionRecord is one row of the consumption history used for fraud analysis.
type ConsumptionRecord struct {
	CustomerID    int64     `db:"customer_id" json:"customer_id"`
	ReadingMonth  time.Time `db:"reading_month" json:"reading_month"`
	UnitsConsumed float64   `db:"units_consumed" json:"units_consumed"`
	PreviousUnits float64   `db:"previous_units" json:"previous_units"`
	BillAmount    float64   `db:"bill_amount" json:"bill_amount"`
}

// MeterSubmission is one raw meter submission joined with the customer name.
type MeterSubmission struct {
	ConsumptionID  int64     `db:"consumption_id" json:"consumption_id"`
	CustomerID     int64     `db:"customer_id" json:"customer_id"`
	Name           string    `db:"name" json:"name"`
	ConsumptionKWh float64   `db:"consumption_kwh" json:"consumption_kwh"`
	ReadingDate    string    `db:"reading_date" json:"reading_date"`
	MeterReading   int64     `db:"meter_reading" json:"meter_reading"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
