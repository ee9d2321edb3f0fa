package models

// Customer identifies a metered electricity customer.
type Customer struct {
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Name       string `db:"name" json:"name"`
	City       string `db:"city" json:"city"`
}
