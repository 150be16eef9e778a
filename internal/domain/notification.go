package domain

import "time"

type Notification struct {
	ID             int32
	UserID         int32
	RecipientEmail string
	Message        string
	IsRead         bool
	CreatedAt      time.Time
	Username       string // populated on reads
}
