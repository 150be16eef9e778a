package settlement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/utils"
)

// PaidAmount sums the recorded payments of a share.
func PaidAmount(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.AmountPaid)
	}
	return total
}

// Outstanding is the unpaid remainder of a share.
func Outstanding(shareAmount, paid decimal.Decimal) decimal.Decimal {
	return shareAmount.Sub(paid)
}

// BillTotalPaid sums the full amounts of shares flagged paid. Partial
// payments on shares that are not yet settled do not count.
func BillTotalPaid(shares []domain.BillShare) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		if s.IsPaid {
			total = total.Add(s.ShareAmount)
		}
	}
	return total
}

// Status derives a bill's state from its settled total and due date. The due
// date comparison is by UTC calendar date: a bill due today is not overdue.
func Status(amount, totalPaid decimal.Decimal, dueDate time.Time, today utils.Date) domain.BillStatus {
	if totalPaid.GreaterThanOrEqual(amount) {
		return domain.BillStatusPaid
	}
	if utils.DateOf(dueDate).Before(today) {
		return domain.BillStatusOverdue
	}
	return domain.BillStatusPending
}

// BillStatus is Status over a bill and its shares.
func BillStatus(bill *domain.Bill, shares []domain.BillShare, today utils.Date) domain.BillStatus {
	return Status(bill.Amount, BillTotalPaid(shares), bill.DueDate, today)
}

// Apply validates a payment of amount against share given what has already
// been paid, and returns the payment to record. When the payment completes
// the share, share.IsPaid is set; this and MarkFullyPaid are the only places
// the flag changes.
func Apply(share *domain.BillShare, alreadyPaid, amount decimal.Decimal, method string, now time.Time) (*domain.Payment, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	outstanding := Outstanding(share.ShareAmount, alreadyPaid)
	if !outstanding.IsPositive() || share.IsPaid {
		return nil, fmt.Errorf("%w: this user's share is already fully paid", domain.ErrInvalidState)
	}

	if amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: payment exceeds outstanding amount (%s)", domain.ErrInvalidAmount, outstanding.StringFixed(CurrencyScale))
	}

	payment := &domain.Payment{
		UserID:      share.UserID,
		BillShareID: share.ID,
		AmountPaid:  amount,
		Method:      strings.TrimSpace(method),
		PaidOn:      now.UTC(),
	}

	if alreadyPaid.Add(amount).GreaterThanOrEqual(share.ShareAmount) {
		share.IsPaid = true
	}
	return payment, nil
}

// MarkFullyPaid flags every share paid without recording payments, so
// PaidAmount of a share may stay below its ShareAmount afterwards.
func MarkFullyPaid(shares []domain.BillShare) []domain.BillShare {
	out := make([]domain.BillShare, len(shares))
	for i, s := range shares {
		s.IsPaid = true
		out[i] = s
	}
	return out
}
