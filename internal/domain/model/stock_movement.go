package model

import "time"

type StockDirection string

const (
	StockDirectionIn  StockDirection = "in"
	StockDirectionOut StockDirection = "out"
)

type StockReason string

const (
	StockReasonPurchase     StockReason = "purchase"
	StockReasonSale         StockReason = "sale"
	StockReasonReturn       StockReason = "return"
	StockReasonCancellation StockReason = "cancellation"
	StockReasonAdjustment   StockReason = "adjustment"
)

// StockMovement is one entry in the append-only inventory ledger. Rows are
// never updated or deleted after creation.
type StockMovement struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      int64          `gorm:"not null;index" json:"product_id"`
	OrderID        *string        `gorm:"type:varchar(36);index" json:"order_id,omitempty"`
	Direction      StockDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Quantity       int64          `gorm:"not null" json:"quantity"`
	Reason         StockReason    `gorm:"type:varchar(20);not null;index" json:"reason"`
	PreviousStock  int64          `gorm:"not null" json:"previous_stock"`
	ResultingStock int64          `gorm:"not null" json:"resulting_stock"`
	Note           string         `gorm:"type:text" json:"note"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
