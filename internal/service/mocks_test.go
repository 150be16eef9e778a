package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) GetSummary(ctx context.Context, id int32) (*domain.GroupSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupSummary), args.Error(1)
}
func (m *MockGroupRepo) ListSummaries(ctx context.Context) ([]domain.GroupSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GroupSummary), args.Error(1)
}
func (m *MockGroupRepo) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockGroupRepo) CountByCreator(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockGroupMemberRepo
type MockGroupMemberRepo struct {
	mock.Mock
}

func (m *MockGroupMemberRepo) Add(ctx context.Context, member *domain.GroupMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockGroupMemberRepo) Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}
func (m *MockGroupMemberRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.MemberDetail, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.MemberDetail), args.Error(1)
}
func (m *MockGroupMemberRepo) Remove(ctx context.Context, groupID, userID int32) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}
func (m *MockGroupMemberRepo) DeleteByGroup(ctx context.Context, groupID int32) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockGroupMemberRepo) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBillRepo
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) CreateWithShares(ctx context.Context, bill *domain.Bill, shares []domain.BillShare) error {
	args := m.Called(ctx, bill, shares)
	return args.Error(0)
}
func (m *MockBillRepo) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillRepo) List(ctx context.Context) ([]domain.Bill, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.Bill, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) Update(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}
func (m *MockBillRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBillRepo) CountByPayer(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockBillShareRepo
type MockBillShareRepo struct {
	mock.Mock
}

func (m *MockBillShareRepo) ListByBill(ctx context.Context, billID int32) ([]domain.ShareDetail, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).([]domain.ShareDetail), args.Error(1)
}
func (m *MockBillShareRepo) ListByBills(ctx context.Context, billIDs []int32) (map[int32][]domain.ShareDetail, error) {
	args := m.Called(ctx, billIDs)
	return args.Get(0).(map[int32][]domain.ShareDetail), args.Error(1)
}
func (m *MockBillShareRepo) MarkAllPaid(ctx context.Context, billID int32) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBillShareRepo) DeleteByBill(ctx context.Context, billID int32) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBillShareRepo) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBillShareRepo) ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]domain.ShareReminder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.ShareReminder), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Settle(ctx context.Context, shareID, userID int32, apply repository.SettleFunc) (*domain.Payment, *domain.BillShare, error) {
	args := m.Called(ctx, shareID, userID, apply)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.BillShare), args.Error(2)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) DeleteByBill(ctx context.Context, billID int32) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) DeleteByShareOwner(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityLogRepo
type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityLogRepo) List(ctx context.Context, limit, offset int32) ([]domain.ActivityLog, int32, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int32), args.Error(2)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, userID int32, recipientEmail, message string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, recipientEmail, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationService) NotifyUser(ctx context.Context, userID int32, message string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationService) ListAll(ctx context.Context, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) ListForUser(ctx context.Context, userID, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}

// nopActivity discards activity entries.
type nopActivity struct{}

func (nopActivity) Record(ctx context.Context, action, actor, description string) {}
func (nopActivity) List(ctx context.Context, page, pageSize int32) ([]domain.ActivityLog, int32, error) {
	return nil, 0, nil
}
