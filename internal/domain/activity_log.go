package domain

import "time"

// ActivityLog is append-only.
type ActivityLog struct {
	ID          int32     `json:"id"`
	Action      string    `json:"action"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}
