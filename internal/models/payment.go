package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus matches the PostgreSQL ENUM payment_status.
// Refunded and Failed are terminal; no transition leaves them.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusRefunded || s == PaymentStatusFailed
}

// Payment records the financial side of a booking. Exactly one payment exists
// per booking and its amount equals the booking's total price at creation.
// Authorization happens upstream at the gateway; this record only tracks the
// outcome lifecycle.
type Payment struct {
	ID          int64           `json:"id" db:"id"`
	Reference   uuid.UUID       `json:"reference" db:"reference"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	Status      PaymentStatus   `json:"status" db:"status"`
}
