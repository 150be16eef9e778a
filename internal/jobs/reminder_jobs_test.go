package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"utility-bill-splitter/internal/config"
	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
	"utility-bill-splitter/internal/service"
)

// MockShareRepo
type MockShareRepo struct {
	repository.BillShareRepository
	mock.Mock
}

func (m *MockShareRepo) ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]domain.ShareReminder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.ShareReminder), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	service.NotificationService
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, userID int32, recipientEmail, message string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, recipientEmail, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func newRunner(shares *MockShareRepo, notifier *MockNotifier) *JobRunner {
	cfg := &config.Config{}
	cfg.Reminders.DueSoonDays = 3
	jr := NewJobRunner(shares, notifier, cfg)
	jr.now = func() time.Time { return time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC) }
	return jr
}

func reminder(shareID, userID int32, amount, paid string, due time.Time) domain.ShareReminder {
	return domain.ShareReminder{
		ShareID:     shareID,
		UserID:      userID,
		Email:       "user@example.com",
		BillID:      10,
		BillTitle:   "Electricity",
		ShareAmount: decimal.RequireFromString(amount),
		PaidAmount:  decimal.RequireFromString(paid),
		DueDate:     due,
	}
}

func TestSendOverdueReminders(t *testing.T) {
	t.Run("QueriesUpToYesterday", func(t *testing.T) {
		// Goal: overdue window ends the day before today and every unpaid share is notified
		shares := new(MockShareRepo)
		notifier := new(MockNotifier)
		jr := newRunner(shares, notifier)

		due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		shares.On("ListUnpaidDueBetween", mock.Anything, earliestDueDate, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)).
			Return([]domain.ShareReminder{reminder(1, 2, "450.00", "100.00", due)}, nil)
		notifier.On("Dispatch", mock.Anything, int32(2), "user@example.com",
			"Reminder: your share of bill 'Electricity' was due 2024-05-01 and is overdue. Outstanding: 350.00.").
			Return(&domain.Notification{ID: 1}, nil)

		jr.SendOverdueReminders()

		shares.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("DispatchFailureDoesNotStopRun", func(t *testing.T) {
		shares := new(MockShareRepo)
		notifier := new(MockNotifier)
		jr := newRunner(shares, notifier)

		due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		shares.On("ListUnpaidDueBetween", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ShareReminder{
				reminder(1, 2, "450.00", "0", due),
				reminder(2, 3, "450.00", "0", due),
			}, nil)
		notifier.On("Dispatch", mock.Anything, int32(2), mock.Anything, mock.Anything).Return(nil, errors.New("smtp down"))
		notifier.On("Dispatch", mock.Anything, int32(3), mock.Anything, mock.Anything).Return(&domain.Notification{ID: 2}, nil)

		jr.SendOverdueReminders()

		notifier.AssertNumberOfCalls(t, "Dispatch", 2)
	})

	t.Run("SkipsSettledShares", func(t *testing.T) {
		shares := new(MockShareRepo)
		notifier := new(MockNotifier)
		jr := newRunner(shares, notifier)

		due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		shares.On("ListUnpaidDueBetween", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ShareReminder{reminder(1, 2, "450.00", "450.00", due)}, nil)

		jr.SendOverdueReminders()

		notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepositoryErrorIsRecovered", func(t *testing.T) {
		shares := new(MockShareRepo)
		notifier := new(MockNotifier)
		jr := newRunner(shares, notifier)

		shares.On("ListUnpaidDueBetween", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ShareReminder(nil), errors.New("connection refused"))

		assert.NotPanics(t, jr.SendOverdueReminders)
		notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSendDueSoonReminders(t *testing.T) {
	// Goal: due-soon window spans today through today plus the configured days
	shares := new(MockShareRepo)
	notifier := new(MockNotifier)
	jr := newRunner(shares, notifier)

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	shares.On("ListUnpaidDueBetween", mock.Anything, today, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)).
		Return([]domain.ShareReminder{reminder(1, 2, "300.00", "0", due)}, nil)
	notifier.On("Dispatch", mock.Anything, int32(2), "user@example.com",
		"Reminder: your share of bill 'Electricity' is due 2024-05-12. Outstanding: 300.00.").
		Return(&domain.Notification{ID: 1}, nil)

	jr.SendDueSoonReminders()

	shares.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestJobRunner_LogsWithServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "text")
	t.Cleanup(func() { logger.Initialize("info", "text") })

	shares := new(MockShareRepo)
	jr := newRunner(shares, new(MockNotifier))
	shares.On("ListUnpaidDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ShareReminder(nil), nil)

	jr.SendDueSoonReminders()

	out := buf.String()
	assert.Contains(t, out, "service=cronjob")
	assert.Contains(t, out, "job=SendDueSoonReminders")
}

func TestRunWithRecovery_Panic(t *testing.T) {
	jr := newRunner(new(MockShareRepo), new(MockNotifier))
	assert.NotPanics(t, func() {
		jr.runWithRecovery("Panicky", func() error { panic("boom") })
	})
}
