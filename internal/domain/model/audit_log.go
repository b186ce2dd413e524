package model

import "time"

// Staff operation types recorded in the audit log.
type AuditAction string

const (
	AuditActionUpdateOrderStatus  AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionDecideCancellation AuditAction = "DECIDE_CANCELLATION"
	AuditActionDecideReturn       AuditAction = "DECIDE_RETURN"
	AuditActionAdjustStock        AuditAction = "ADJUST_STOCK"
)

type AuditResourceType string

const (
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceProduct AuditResourceType = "product"
)

// AuditLog records who did what to which resource. Before/after are stored as
// JSON strings.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
