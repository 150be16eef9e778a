package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
	"utility-bill-splitter/internal/settlement"
	"utility-bill-splitter/internal/utils"
)

type billService struct {
	billRepo    repository.BillRepository
	shareRepo   repository.BillShareRepository
	paymentRepo repository.PaymentRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	activity    ActivityService
	now         func() time.Time
}

func NewBillService(
	billRepo repository.BillRepository,
	shareRepo repository.BillShareRepository,
	paymentRepo repository.PaymentRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	activity ActivityService,
) BillService {
	return &billService{
		billRepo:    billRepo,
		shareRepo:   shareRepo,
		paymentRepo: paymentRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		activity:    activity,
		now:         time.Now,
	}
}

func (s *billService) CreateBill(ctx context.Context, actorID int32, in BillInput) (*BillView, error) {
	logger.EnterMethod("billService.CreateBill", "groupID", in.GroupID, "payerID", in.PayerID, "participants", len(in.ParticipantIDs))

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.UtilityType) == "" {
		err := fmt.Errorf("%w: title and utility type are required", domain.ErrInvalidInput)
		logger.ExitMethodWithError("billService.CreateBill", err)
		return nil, err
	}
	if err := settlement.ValidateAmount(in.Amount); err != nil {
		logger.ExitMethodWithError("billService.CreateBill", err)
		return nil, err
	}
	allocations, err := settlement.AllocateShares(in.Amount, in.ParticipantIDs)
	if err != nil {
		logger.ExitMethodWithError("billService.CreateBill", err)
		return nil, err
	}

	if _, err := s.groupRepo.GetByID(ctx, in.GroupID); err != nil {
		err = notFound(err, "group %d", in.GroupID)
		logger.ExitMethodWithError("billService.CreateBill", err, "groupID", in.GroupID)
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.PayerID); err != nil {
		err = notFound(err, "payer %d", in.PayerID)
		logger.ExitMethodWithError("billService.CreateBill", err, "payerID", in.PayerID)
		return nil, err
	}
	for _, id := range in.ParticipantIDs {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			err = notFound(err, "participant %d", id)
			logger.ExitMethodWithError("billService.CreateBill", err, "participantID", id)
			return nil, err
		}
	}

	bill := &domain.Bill{
		Title:       strings.TrimSpace(in.Title),
		Amount:      in.Amount,
		DueDate:     utils.DateOf(in.DueDate).Time(),
		UtilityType: strings.TrimSpace(in.UtilityType),
		Description: in.Description,
		GroupID:     in.GroupID,
		PayerID:     in.PayerID,
	}
	shares := make([]domain.BillShare, len(allocations))
	for i, a := range allocations {
		shares[i] = domain.BillShare{UserID: a.UserID, ShareAmount: a.ShareAmount}
	}

	if err := s.billRepo.CreateWithShares(ctx, bill, shares); err != nil {
		logger.ExitMethodWithError("billService.CreateBill", err, "groupID", in.GroupID)
		return nil, err
	}

	view, err := s.view(ctx, bill)
	if err != nil {
		logger.ExitMethodWithError("billService.CreateBill", err, "billID", bill.ID)
		return nil, err
	}

	for _, share := range view.Shares {
		message := fmt.Sprintf("New %s bill '%s' due %s. Your share is %s.",
			bill.UtilityType, bill.Title, utils.FormatDate(bill.DueDate), share.ShareAmount.StringFixed(settlement.CurrencyScale))
		if _, err := s.notifier.Dispatch(ctx, share.UserID, share.Email, message); err != nil {
			logger.Warn("Failed to notify participant", "billID", bill.ID, "userID", share.UserID, "error", err)
		}
	}

	s.activity.Record(ctx, "Bill Created", actorName(ctx, s.userRepo, actorID),
		fmt.Sprintf("Bill '%s' of %s created for group %d.", bill.Title, bill.Amount.StringFixed(settlement.CurrencyScale), bill.GroupID))

	logger.ExitMethod("billService.CreateBill", "billID", bill.ID)
	return view, nil
}

func (s *billService) GetBill(ctx context.Context, id int32) (*BillView, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "bill %d", id)
	}
	return s.view(ctx, bill)
}

func (s *billService) ListBills(ctx context.Context) ([]BillView, error) {
	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bills)
}

func (s *billService) ListGroupBills(ctx context.Context, groupID int32) ([]BillView, error) {
	bills, err := s.billRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bills)
}

func (s *billService) UpdateBill(ctx context.Context, id int32, upd BillUpdate) (*domain.Bill, error) {
	if strings.TrimSpace(upd.Title) == "" || strings.TrimSpace(upd.UtilityType) == "" {
		return nil, fmt.Errorf("%w: title and utility type are required", domain.ErrInvalidInput)
	}
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "bill %d", id)
	}
	bill.Title = strings.TrimSpace(upd.Title)
	bill.DueDate = utils.DateOf(upd.DueDate).Time()
	bill.UtilityType = strings.TrimSpace(upd.UtilityType)
	bill.Description = upd.Description
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, notFound(err, "bill %d", id)
	}
	return bill, nil
}

// DeleteBill removes the bill's payments, then its shares, then the bill.
func (s *billService) DeleteBill(ctx context.Context, actorID, id int32) error {
	logger.EnterMethod("billService.DeleteBill", "billID", id, "actorID", actorID)

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, "bill %d", id)
		logger.ExitMethodWithError("billService.DeleteBill", err, "billID", id)
		return err
	}

	steps := []cascadeStep{
		{name: "payments", run: func(ctx context.Context) (int64, error) { return s.paymentRepo.DeleteByBill(ctx, id) }},
		{name: "bill shares", run: func(ctx context.Context) (int64, error) { return s.shareRepo.DeleteByBill(ctx, id) }},
		{name: "bill", run: deleteOne(s.billRepo.Delete, id)},
	}
	if err := runCascade(ctx, "bill", id, steps); err != nil {
		logger.ExitMethodWithError("billService.DeleteBill", err, "billID", id)
		return err
	}

	s.activity.Record(ctx, "Bill Deleted", actorName(ctx, s.userRepo, actorID), fmt.Sprintf("Bill '%s' deleted.", bill.Title))

	logger.ExitMethod("billService.DeleteBill", "billID", id)
	return nil
}

// MarkBillFullyPaid flags every share of the bill paid without recording
// payments. Only administrators and the creator of the bill's group may do so.
func (s *billService) MarkBillFullyPaid(ctx context.Context, actorID int32, actorRole domain.UserRole, billID int32) (*BillView, error) {
	logger.EnterMethod("billService.MarkBillFullyPaid", "billID", billID, "actorID", actorID)

	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		err = notFound(err, "bill %d", billID)
		logger.ExitMethodWithError("billService.MarkBillFullyPaid", err, "billID", billID)
		return nil, err
	}

	if actorRole != domain.UserRoleAdmin {
		group, err := s.groupRepo.GetByID(ctx, bill.GroupID)
		if err != nil {
			err = notFound(err, "group %d", bill.GroupID)
			logger.ExitMethodWithError("billService.MarkBillFullyPaid", err, "billID", billID)
			return nil, err
		}
		if group.CreatedByID != actorID {
			err := fmt.Errorf("%w: only an administrator or the group creator can mark a bill paid", domain.ErrForbidden)
			logger.ExitMethodWithError("billService.MarkBillFullyPaid", err, "billID", billID, "actorID", actorID)
			return nil, err
		}
	}

	details, err := s.shareRepo.ListByBill(ctx, billID)
	if err != nil {
		logger.ExitMethodWithError("billService.MarkBillFullyPaid", err, "billID", billID)
		return nil, err
	}
	if _, err := s.shareRepo.MarkAllPaid(ctx, billID); err != nil {
		logger.ExitMethodWithError("billService.MarkBillFullyPaid", err, "billID", billID)
		return nil, err
	}

	marked := settlement.MarkFullyPaid(shareRows(details))
	for i := range details {
		details[i].BillShare = marked[i]
	}

	s.activity.Record(ctx, "Bill Marked Paid", actorName(ctx, s.userRepo, actorID),
		fmt.Sprintf("Bill '%s' marked fully paid without recorded payments.", bill.Title))

	logger.ExitMethod("billService.MarkBillFullyPaid", "billID", billID, "shares", len(details))
	return &BillView{
		Bill:   *bill,
		Status: settlement.BillStatus(bill, marked, s.today()),
		Shares: details,
	}, nil
}

func (s *billService) view(ctx context.Context, bill *domain.Bill) (*BillView, error) {
	details, err := s.shareRepo.ListByBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return &BillView{
		Bill:   *bill,
		Status: settlement.BillStatus(bill, shareRows(details), s.today()),
		Shares: details,
	}, nil
}

func (s *billService) views(ctx context.Context, bills []domain.Bill) ([]BillView, error) {
	ids := make([]int32, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	sharesByBill, err := s.shareRepo.ListByBills(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := s.today()
	views := make([]BillView, len(bills))
	for i := range bills {
		details := sharesByBill[bills[i].ID]
		views[i] = BillView{
			Bill:   bills[i],
			Status: settlement.BillStatus(&bills[i], shareRows(details), today),
			Shares: details,
		}
	}
	return views, nil
}

func (s *billService) today() utils.Date {
	return utils.DateOf(s.now())
}

func shareRows(details []domain.ShareDetail) []domain.BillShare {
	rows := make([]domain.BillShare, len(details))
	for i, d := range details {
		rows[i] = d.BillShare
	}
	return rows
}
