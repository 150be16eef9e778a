package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GroupMemberRole string

const (
	GroupMemberRoleAdmin       GroupMemberRole = "Admin"
	GroupMemberRoleContributor GroupMemberRole = "Contributor"
)

type Group struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedByID int32     `json:"createdById"`
	CreatedOn   time.Time `json:"createdOn"`
}

type GroupMember struct {
	ID       int32           `json:"id"`
	GroupID  int32           `json:"groupId"`
	UserID   int32           `json:"userId"`
	Role     GroupMemberRole `json:"role"`
	JoinedOn time.Time       `json:"joinedOn"`
}

// MemberDetail is a membership row joined with the member's user record.
type MemberDetail struct {
	GroupMember
	Username string
	Email    string
}

// GroupSummary carries the per-group aggregates shown in group listings.
type GroupSummary struct {
	Group
	MemberCount int32
	BillTotal   decimal.Decimal
	BillCount   int32
}
