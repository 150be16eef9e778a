package jobs

import (
	"context"
	"fmt"
	"time"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/settlement"
	"utility-bill-splitter/internal/utils"
)

// earliestDueDate bounds the overdue window from below.
var earliestDueDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// SendOverdueReminders notifies every participant with an unpaid share of a
// bill whose due date has passed.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() error {
		yesterday := utils.DateOf(jr.now()).AddDays(-1)
		return jr.remind(context.Background(), earliestDueDate, yesterday.Time(), func(r domain.ShareReminder, outstanding string) string {
			return fmt.Sprintf("Reminder: your share of bill '%s' was due %s and is overdue. Outstanding: %s.",
				r.BillTitle, utils.FormatDate(r.DueDate), outstanding)
		})
	})
}

// SendDueSoonReminders notifies participants whose unpaid share falls due
// within the configured number of days, today included.
func (jr *JobRunner) SendDueSoonReminders() {
	jr.runWithRecovery("SendDueSoonReminders", func() error {
		today := utils.DateOf(jr.now())
		until := today.AddDays(jr.config.Reminders.DueSoonDays)
		return jr.remind(context.Background(), today.Time(), until.Time(), func(r domain.ShareReminder, outstanding string) string {
			return fmt.Sprintf("Reminder: your share of bill '%s' is due %s. Outstanding: %s.",
				r.BillTitle, utils.FormatDate(r.DueDate), outstanding)
		})
	})
}

// remind dispatches one notification per unpaid share due in [from, to].
// A failed dispatch is logged and does not stop the run.
func (jr *JobRunner) remind(ctx context.Context, from, to time.Time, message func(domain.ShareReminder, string) string) error {
	reminders, err := jr.shares.ListUnpaidDueBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("list unpaid shares: %w", err)
	}

	sent, failed := 0, 0
	for _, r := range reminders {
		outstanding := settlement.Outstanding(r.ShareAmount, r.PaidAmount)
		if !outstanding.IsPositive() {
			continue
		}
		if _, err := jr.notifier.Dispatch(ctx, r.UserID, r.Email, message(r, outstanding.StringFixed(settlement.CurrencyScale))); err != nil {
			failed++
			jr.log.Error("Failed to send reminder",
				"share_id", r.ShareID,
				"bill_id", r.BillID,
				"user_id", r.UserID,
				"error", err)
			continue
		}
		sent++
		jr.log.Debug("Sent reminder", "share_id", r.ShareID, "bill_id", r.BillID, "user_id", r.UserID)
	}

	jr.log.Info("Reminders dispatched", "sent", sent, "failed", failed, "from", utils.FormatDate(from), "to", utils.FormatDate(to))
	return nil
}
