package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error) // token, user
}

type UserService interface {
	GetProfile(ctx context.Context, viewerID, userID int32) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// GroupDetail is a group summary with its membership.
type GroupDetail struct {
	domain.GroupSummary
	Members []domain.MemberDetail
}

type GroupService interface {
	CreateGroup(ctx context.Context, creatorID int32, name, description string, memberIDs []int32) (*GroupDetail, error)
	ListGroups(ctx context.Context) ([]GroupDetail, error)
	GetGroup(ctx context.Context, id int32) (*GroupDetail, error)
	UpdateGroup(ctx context.Context, id int32, name, description string) (*domain.Group, error)
	DeleteGroup(ctx context.Context, actorID, id int32) error
	AddMember(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error)
	RemoveMember(ctx context.Context, groupID, userID, requestedBy int32) error
}

// BillInput carries the fields of a new bill.
type BillInput struct {
	Title          string
	Amount         decimal.Decimal
	DueDate        time.Time
	UtilityType    string
	Description    string
	GroupID        int32
	PayerID        int32
	ParticipantIDs []int32
}

// BillUpdate carries the mutable fields of an existing bill.
type BillUpdate struct {
	Title       string
	DueDate     time.Time
	UtilityType string
	Description string
}

// BillView is a bill with its derived status and participant shares.
type BillView struct {
	domain.Bill
	Status domain.BillStatus
	Shares []domain.ShareDetail
}

type BillService interface {
	CreateBill(ctx context.Context, actorID int32, in BillInput) (*BillView, error)
	GetBill(ctx context.Context, id int32) (*BillView, error)
	ListBills(ctx context.Context) ([]BillView, error)
	ListGroupBills(ctx context.Context, groupID int32) ([]BillView, error)
	UpdateBill(ctx context.Context, id int32, upd BillUpdate) (*domain.Bill, error)
	DeleteBill(ctx context.Context, actorID, id int32) error
	MarkBillFullyPaid(ctx context.Context, actorID int32, actorRole domain.UserRole, billID int32) (*BillView, error)
}

// PaymentReceipt is the result of an accepted payment.
type PaymentReceipt struct {
	domain.Payment
	BillID    int32
	SharePaid bool
}

type PaymentService interface {
	ApplyPayment(ctx context.Context, userID, shareID int32, amount decimal.Decimal, method string) (*PaymentReceipt, error)
	GetPayment(ctx context.Context, id int32) (*domain.PaymentDetail, error)
	ListPayments(ctx context.Context) ([]domain.PaymentDetail, error)
}

type NotificationService interface {
	// Dispatch persists a notification and sends it by email. Email failures
	// are logged, never returned.
	Dispatch(ctx context.Context, userID int32, recipientEmail, message string) (*domain.Notification, error)
	NotifyUser(ctx context.Context, userID int32, message string) (*domain.Notification, error)
	ListAll(ctx context.Context, page, pageSize int32) ([]domain.Notification, int32, error)
	ListForUser(ctx context.Context, userID, page, pageSize int32) ([]domain.Notification, int32, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type ActivityService interface {
	// Record appends an activity entry. Failures are logged and swallowed.
	Record(ctx context.Context, action, actor, description string)
	List(ctx context.Context, page, pageSize int32) ([]domain.ActivityLog, int32, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, adminID, userID int32, role domain.UserRole) (*domain.User, error)
	DeleteUser(ctx context.Context, adminID, userID int32) error
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

// pageBounds converts a 1-based page and size into LIMIT/OFFSET values.
func pageBounds(page, pageSize int32) (int32, int32) {
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

// actorName resolves a user id to a username for activity entries.
func actorName(ctx context.Context, users repository.UserRepository, userID int32) string {
	if u, err := users.GetByID(ctx, userID); err == nil {
		return u.Username
	}
	return fmt.Sprintf("user:%d", userID)
}
