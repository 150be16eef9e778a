package http_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/service"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

// MockBillService
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) CreateBill(ctx context.Context, actorID int32, in service.BillInput) (*service.BillView, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillView), args.Error(1)
}
func (m *MockBillService) GetBill(ctx context.Context, id int32) (*service.BillView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillView), args.Error(1)
}
func (m *MockBillService) ListBills(ctx context.Context) ([]service.BillView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]service.BillView), args.Error(1)
}
func (m *MockBillService) ListGroupBills(ctx context.Context, groupID int32) ([]service.BillView, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]service.BillView), args.Error(1)
}
func (m *MockBillService) UpdateBill(ctx context.Context, id int32, upd service.BillUpdate) (*domain.Bill, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) DeleteBill(ctx context.Context, actorID, id int32) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}
func (m *MockBillService) MarkBillFullyPaid(ctx context.Context, actorID int32, actorRole domain.UserRole, billID int32) (*service.BillView, error) {
	args := m.Called(ctx, actorID, actorRole, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillView), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, userID, shareID int32, amount decimal.Decimal, method string) (*service.PaymentReceipt, error) {
	args := m.Called(ctx, userID, shareID, amount, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentReceipt), args.Error(1)
}
func (m *MockPaymentService) GetPayment(ctx context.Context, id int32) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PaymentDetail), args.Error(1)
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

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockAdminService) UpdateRole(ctx context.Context, adminID, userID int32, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, adminID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAdminService) DeleteUser(ctx context.Context, adminID, userID int32) error {
	args := m.Called(ctx, adminID, userID)
	return args.Error(0)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}
