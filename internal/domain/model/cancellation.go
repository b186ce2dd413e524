package model

import "time"

type CancellationStatus string

const (
	CancellationStatusRequested CancellationStatus = "requested"
	CancellationStatusApproved  CancellationStatus = "approved"
	CancellationStatusRejected  CancellationStatus = "rejected"
)

// Cancellation is the buyer-initiated cancel request on an order. At most one
// row per order; a new request reuses and resets the existing row.
type Cancellation struct {
	ID          int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string             `gorm:"type:varchar(36);not null;uniqueIndex" json:"order_id"`
	Reason      string             `gorm:"type:text;not null" json:"reason"`
	Status      CancellationStatus `gorm:"type:varchar(20);not null" json:"status"`
	ProcessedAt *time.Time         `json:"processed_at,omitempty"`
	CreatedAt   time.Time          `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
