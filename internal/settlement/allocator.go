// Package settlement holds the bill arithmetic: even share allocation,
// paid/outstanding aggregation, status derivation and payment validation.
// Everything here is pure; persistence belongs to the caller.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
)

// CurrencyScale is the number of decimal places carried by every amount.
const CurrencyScale = 2

// Allocation is one participant's share of a bill before it is persisted.
type Allocation struct {
	UserID      int32
	ShareAmount decimal.Decimal
}

// AllocateShares splits total evenly across participants, in order.
// Each share is total/n rounded to CurrencyScale; a remainder that does not
// divide evenly is not redistributed, so 100 over three participants yields
// three shares of 33.33.
func AllocateShares(total decimal.Decimal, participantIDs []int32) ([]Allocation, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", domain.ErrInvalidInput)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidAmount)
	}

	seen := make(map[int32]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: participant %d listed more than once", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	share := total.DivRound(decimal.NewFromInt(int64(len(participantIDs))), CurrencyScale)

	allocations := make([]Allocation, len(participantIDs))
	for i, id := range participantIDs {
		allocations[i] = Allocation{UserID: id, ShareAmount: share}
	}
	return allocations, nil
}

// ValidateAmount checks that amount is positive and carries no more than
// CurrencyScale decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Round(CurrencyScale)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", domain.ErrInvalidAmount, CurrencyScale)
	}
	return nil
}
