package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id int32, role domain.UserRole) error
	Delete(ctx context.Context, id int32) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	GetSummary(ctx context.Context, id int32) (*domain.GroupSummary, error)
	ListSummaries(ctx context.Context) ([]domain.GroupSummary, error)
	Update(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, id int32) error
	CountByCreator(ctx context.Context, userID int32) (int32, error)
}

type GroupMemberRepository interface {
	Add(ctx context.Context, member *domain.GroupMember) error
	Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.MemberDetail, error)
	Remove(ctx context.Context, groupID, userID int32) error
	DeleteByGroup(ctx context.Context, groupID int32) (int64, error)
	DeleteByUser(ctx context.Context, userID int32) (int64, error)
}

type BillRepository interface {
	// CreateWithShares inserts the bill and its shares in one transaction and
	// fills in the generated ids.
	CreateWithShares(ctx context.Context, bill *domain.Bill, shares []domain.BillShare) error
	GetByID(ctx context.Context, id int32) (*domain.Bill, error)
	List(ctx context.Context) ([]domain.Bill, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.Bill, error)
	Update(ctx context.Context, bill *domain.Bill) error
	Delete(ctx context.Context, id int32) error
	CountByPayer(ctx context.Context, userID int32) (int32, error)
}

type BillShareRepository interface {
	ListByBill(ctx context.Context, billID int32) ([]domain.ShareDetail, error)
	ListByBills(ctx context.Context, billIDs []int32) (map[int32][]domain.ShareDetail, error)
	MarkAllPaid(ctx context.Context, billID int32) (int64, error)
	DeleteByBill(ctx context.Context, billID int32) (int64, error)
	DeleteByUser(ctx context.Context, userID int32) (int64, error)
	ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]domain.ShareReminder, error)
}

// SettleFunc validates a payment against a locked share snapshot and returns
// the payment to insert. It may set share.IsPaid.
type SettleFunc func(share *domain.BillShare, alreadyPaid decimal.Decimal) (*domain.Payment, error)

type PaymentRepository interface {
	// Settle locks the share identified by (shareID, userID), sums its
	// payments and hands both to apply. The returned payment is inserted and
	// the share's paid flag persisted before the lock is released.
	Settle(ctx context.Context, shareID, userID int32, apply SettleFunc) (*domain.Payment, *domain.BillShare, error)
	GetByID(ctx context.Context, id int32) (*domain.PaymentDetail, error)
	List(ctx context.Context) ([]domain.PaymentDetail, error)
	DeleteByBill(ctx context.Context, billID int32) (int64, error)
	DeleteByUser(ctx context.Context, userID int32) (int64, error)
	DeleteByShareOwner(ctx context.Context, userID int32) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, limit, offset int32) ([]domain.Notification, int32, error)
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	DeleteByUser(ctx context.Context, userID int32) (int64, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, limit, offset int32) ([]domain.ActivityLog, int32, error)
}
