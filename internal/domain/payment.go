package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is immutable once recorded.
type Payment struct {
	ID          int32
	UserID      int32
	BillShareID int32
	AmountPaid  decimal.Decimal
	Method      string
	PaidOn      time.Time
}

// PaymentDetail is a payment joined with its bill and payer.
type PaymentDetail struct {
	Payment
	BillID     int32
	BillTitle  string
	BillAmount decimal.Decimal
	Username   string
	Email      string
}
