package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/service"
	"utility-bill-splitter/internal/settlement"
	"utility-bill-splitter/internal/utils"
)

const (
	notificationTitle      = "Bill Notification"
	notificationType       = "info"
	isoTimestampLayout     = "2006-01-02T15:04:05.000Z07:00"
	notificationDateLayout = "Jan 02, 2006 at 03:04 PM"
)

// money renders an amount as a JSON number with two decimal places.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(settlement.CurrencyScale))
}

type memberView struct {
	ID       int32  `json:"id"`
	UserID   int32  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type groupView struct {
	ID          int32        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedByID int32        `json:"createdById"`
	CreatedOn   string       `json:"createdOn"`
	MemberCount int32        `json:"memberCount"`
	TotalBills  json.Number  `json:"totalBills"`
	ActiveBills int32        `json:"activeBills"`
	Members     []memberView `json:"members"`
}

func MapGroupDetailToView(g *service.GroupDetail) groupView {
	members := make([]memberView, len(g.Members))
	for i, m := range g.Members {
		members[i] = memberView{
			ID:       m.ID,
			UserID:   m.UserID,
			Username: m.Username,
			Email:    m.Email,
			Role:     string(m.Role),
			JoinedAt: m.JoinedOn.UTC().Format(utils.DateLayout),
		}
	}
	return groupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedByID: g.CreatedByID,
		CreatedOn:   g.CreatedOn.UTC().Format(utils.DateLayout),
		MemberCount: g.MemberCount,
		TotalBills:  money(g.BillTotal),
		ActiveBills: g.BillCount,
		Members:     members,
	}
}

type participantView struct {
	ID          int32       `json:"id"`
	BillID      int32       `json:"billId"`
	UserID      int32       `json:"userId"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	ShareAmount json.Number `json:"shareAmount"`
	IsPaid      bool        `json:"isPaid"`
	PaidAmount  json.Number `json:"paidAmount"`
	Outstanding json.Number `json:"outstanding"`
}

type billView struct {
	ID           int32             `json:"id"`
	Title        string            `json:"title"`
	TotalAmount  json.Number       `json:"totalAmount"`
	Amount       json.Number       `json:"amount"`
	UtilityType  string            `json:"utilityType"`
	DueDate      string            `json:"dueDate"`
	Status       string            `json:"status"`
	Description  string            `json:"description"`
	GroupID      int32             `json:"groupId"`
	PayerID      int32             `json:"payerId"`
	CreatedBy    int32             `json:"createdBy"`
	CreatedAt    string            `json:"createdAt"`
	Participants []participantView `json:"participants"`
}

func MapBillViewToResponse(b *service.BillView) billView {
	participants := make([]participantView, len(b.Shares))
	for i, s := range b.Shares {
		participants[i] = participantView{
			ID:          s.ID,
			BillID:      s.BillID,
			UserID:      s.UserID,
			Username:    s.Username,
			Email:       s.Email,
			ShareAmount: money(s.ShareAmount),
			IsPaid:      s.IsPaid,
			PaidAmount:  money(s.PaidAmount),
			Outstanding: money(settlement.Outstanding(s.ShareAmount, s.PaidAmount)),
		}
	}
	return billView{
		ID:           b.ID,
		Title:        b.Title,
		TotalAmount:  money(b.Amount),
		Amount:       money(b.Amount),
		UtilityType:  b.UtilityType,
		DueDate:      utils.FormatDate(b.DueDate),
		Status:       string(b.Status),
		Description:  b.Description,
		GroupID:      b.GroupID,
		PayerID:      b.PayerID,
		CreatedBy:    b.PayerID,
		CreatedAt:    utils.FormatDate(b.CreatedAt),
		Participants: participants,
	}
}

type billRef struct {
	Title  string      `json:"title"`
	Amount json.Number `json:"amount"`
}

type userRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type paymentView struct {
	ID     int32       `json:"id"`
	Amount json.Number `json:"amount"`
	Method string      `json:"method"`
	PaidAt string      `json:"paidAt"`
	BillID int32       `json:"billId"`
	UserID int32       `json:"userId"`
	Bill   *billRef    `json:"bill,omitempty"`
	User   *userRef    `json:"user,omitempty"`
}

func MapReceiptToView(r *service.PaymentReceipt) paymentView {
	return paymentView{
		ID:     r.ID,
		Amount: money(r.AmountPaid),
		Method: r.Method,
		PaidAt: utils.FormatDate(r.PaidOn),
		BillID: r.BillID,
		UserID: r.UserID,
	}
}

func MapPaymentDetailToView(p *domain.PaymentDetail) paymentView {
	return paymentView{
		ID:     p.ID,
		Amount: money(p.AmountPaid),
		Method: p.Method,
		PaidAt: utils.FormatDate(p.PaidOn),
		BillID: p.BillID,
		UserID: p.UserID,
		Bill:   &billRef{Title: p.BillTitle, Amount: money(p.BillAmount)},
		User:   &userRef{Username: p.Username, Email: p.Email},
	}
}

type notificationView struct {
	ID            int32   `json:"id"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	Type          string  `json:"type"`
	IsRead        bool    `json:"isRead"`
	CreatedAt     string  `json:"createdAt"`
	UserID        int32   `json:"userId"`
	User          userRef `json:"user"`
	TimeAgo       string  `json:"timeAgo"`
	FormattedDate string  `json:"formattedDate"`
}

func MapNotificationToView(n *domain.Notification, now time.Time) notificationView {
	created := n.CreatedAt.UTC()
	return notificationView{
		ID:            n.ID,
		Title:         notificationTitle,
		Message:       n.Message,
		Type:          notificationType,
		IsRead:        n.IsRead,
		CreatedAt:     created.Format(isoTimestampLayout),
		UserID:        n.UserID,
		User:          userRef{Username: n.Username, Email: n.RecipientEmail},
		TimeAgo:       utils.TimeAgo(created, now),
		FormattedDate: created.Format(notificationDateLayout),
	}
}
