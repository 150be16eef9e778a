package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusPaid    BillStatus = "Paid"
	BillStatusOverdue BillStatus = "Overdue"
	BillStatusPending BillStatus = "Pending"
)

type Bill struct {
	ID          int32
	Title       string
	Amount      decimal.Decimal
	DueDate     time.Time // calendar date, UTC midnight
	UtilityType string
	Description string
	GroupID     int32
	PayerID     int32
	CreatedAt   time.Time
}

// BillShare is one participant's portion of a bill. IsPaid is a cache of
// "cumulative payments reached ShareAmount" and is only ever set by payment
// settlement or by an explicit mark-fully-paid.
type BillShare struct {
	ID          int32
	BillID      int32
	UserID      int32
	ShareAmount decimal.Decimal
	IsPaid      bool
}

// ShareDetail is a share joined with its participant and payment aggregate.
type ShareDetail struct {
	BillShare
	Username   string
	Email      string
	PaidAmount decimal.Decimal
}

// ShareReminder identifies an unpaid share of a bill for reminder jobs.
type ShareReminder struct {
	ShareID     int32
	UserID      int32
	Email       string
	Username    string
	BillID      int32
	BillTitle   string
	ShareAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	DueDate     time.Time
}
