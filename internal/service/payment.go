package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/metrics"
	"utility-bill-splitter/internal/repository"
	"utility-bill-splitter/internal/settlement"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	billRepo    repository.BillRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	activity    ActivityService
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	activity ActivityService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		activity:    activity,
		now:         time.Now,
	}
}

// ApplyPayment records a payment against the share owned by userID. The
// repository holds the share locked while the settlement engine validates
// the amount, so concurrent payments cannot jointly overpay a share.
func (s *paymentService) ApplyPayment(ctx context.Context, userID, shareID int32, amount decimal.Decimal, method string) (*PaymentReceipt, error) {
	logger.EnterMethod("paymentService.ApplyPayment", "userID", userID, "shareID", shareID, "amount", amount.String())

	if err := settlement.ValidateAmount(amount); err != nil {
		metrics.PaymentsSettled.WithLabelValues(metrics.OutcomeInvalidAmount).Inc()
		logger.ExitMethodWithError("paymentService.ApplyPayment", err, "shareID", shareID)
		return nil, err
	}

	paidAt := s.now()
	payment, share, err := s.paymentRepo.Settle(ctx, shareID, userID,
		func(share *domain.BillShare, alreadyPaid decimal.Decimal) (*domain.Payment, error) {
			return settlement.Apply(share, alreadyPaid, amount, method, paidAt)
		})
	if err != nil {
		err = notFound(err, "bill share %d for user %d", shareID, userID)
		metrics.PaymentsSettled.WithLabelValues(paymentOutcome(err)).Inc()
		logger.ExitMethodWithError("paymentService.ApplyPayment", err, "shareID", shareID, "userID", userID)
		return nil, err
	}

	if share.IsPaid {
		metrics.PaymentsSettled.WithLabelValues(metrics.OutcomeSettled).Inc()
	} else {
		metrics.PaymentsSettled.WithLabelValues(metrics.OutcomeAccepted).Inc()
	}

	s.notifyPayer(ctx, payment, share)

	logger.ExitMethod("paymentService.ApplyPayment", "paymentID", payment.ID, "sharePaid", share.IsPaid)
	return &PaymentReceipt{Payment: *payment, BillID: share.BillID, SharePaid: share.IsPaid}, nil
}

// notifyPayer tells the bill's payer about the payment and records it in the
// activity log. Failures are logged only.
func (s *paymentService) notifyPayer(ctx context.Context, payment *domain.Payment, share *domain.BillShare) {
	bill, err := s.billRepo.GetByID(ctx, share.BillID)
	if err != nil {
		logger.Warn("Payment notification skipped: bill lookup failed", "billID", share.BillID, "error", err)
		return
	}

	payerName := fmt.Sprintf("user %d", payment.UserID)
	if u, err := s.userRepo.GetByID(ctx, payment.UserID); err == nil {
		payerName = u.Username
	}

	s.activity.Record(ctx, "Payment", payerName,
		fmt.Sprintf("Paid %s toward bill '%s'.", payment.AmountPaid.StringFixed(settlement.CurrencyScale), bill.Title))

	recipient, err := s.userRepo.GetByID(ctx, bill.PayerID)
	if err != nil {
		logger.Warn("Payment notification skipped: payer lookup failed", "payerID", bill.PayerID, "error", err)
		return
	}
	message := fmt.Sprintf("%s paid %s toward '%s'.", payerName, payment.AmountPaid.StringFixed(settlement.CurrencyScale), bill.Title)
	if share.IsPaid {
		message += " Their share is now fully paid."
	}
	if _, err := s.notifier.Dispatch(ctx, recipient.ID, recipient.Email, message); err != nil {
		logger.Warn("Failed to notify bill payer", "billID", bill.ID, "payerID", bill.PayerID, "error", err)
	}
}

func (s *paymentService) GetPayment(ctx context.Context, id int32) (*domain.PaymentDetail, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payment %d", id)
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.PaymentDetail, error) {
	return s.paymentRepo.List(ctx)
}

func paymentOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return metrics.OutcomeInvalidAmount
	case errors.Is(err, domain.ErrInvalidState):
		return metrics.OutcomeInvalidState
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
