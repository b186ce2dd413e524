package model

import "time"

type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "requested"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
)

// ReturnRequest mirrors Cancellation for delivered orders, with evidence
// attachments supplied by the buyer.
type ReturnRequest struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string       `gorm:"type:varchar(36);not null;uniqueIndex" json:"order_id"`
	Reason      string       `gorm:"type:text;not null" json:"reason"`
	Evidence    string       `gorm:"type:text" json:"evidence"`
	Status      ReturnStatus `gorm:"type:varchar(20);not null" json:"status"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
