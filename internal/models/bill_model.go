package models

import "time"

// Bill status values as stored in Firestore. "not paid" is a collector
// correction state, distinct from "pending" (issued, awaiting collection).
const (
	BillStatusPaid    = "paid"
	BillStatusPending = "pending"
	BillStatusNotPaid = "not paid"
)

// Bill represents one monthly charge against a customer.
type Bill struct {
	ID         string  `json:"id" firestore:"-"` // Document ID, auto-generated
	CustomerID string  `json:"customerId" firestore:"customerId"`
	Amount     float64 `json:"amount" firestore:"amount"`
	Status     string  `json:"status" firestore:"status"`
	// BillDate is the creation timestamp and the only key used for
	// calendar-month bucketing. PaymentDate is display metadata.
	BillDate    time.Time  `json:"billDate" firestore:"billDate"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" firestore:"paymentDate"`
	Notes       string     `json:"notes,omitempty" firestore:"notes,omitempty"`
}
