package model

import "time"

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelRequested OrderStatus = "cancel_requested"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusReturnRequested OrderStatus = "return_requested"
	OrderStatusReturnRejected  OrderStatus = "return_rejected"
)

type PaymentMethod string

const (
	PaymentMethodGateway PaymentMethod = "gateway"
	PaymentMethodCOD     PaymentMethod = "cod"
)

// validNext holds the buyer/staff transitions. The provider-driven move to
// cancelled is not in this table; it goes through the conditional update
// OrderRepository.MarkCancelled instead.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:         {OrderStatusProcessing: true, OrderStatusCancelRequested: true},
	OrderStatusProcessing:      {OrderStatusShipped: true, OrderStatusCancelRequested: true},
	OrderStatusShipped:         {OrderStatusDelivered: true},
	OrderStatusDelivered:       {OrderStatusReturnRequested: true, OrderStatusCompleted: true},
	OrderStatusCancelRequested: {OrderStatusCancelled: true, OrderStatusProcessing: true},
	OrderStatusReturnRequested: {OrderStatusReturnRejected: true, OrderStatusCancelled: true},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelRequested,
		OrderStatusCancelled, OrderStatusReturnRequested, OrderStatusReturnRejected:
		return true
	}
	return false
}

// Terminal statuses accept no further buyer/staff transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusReturnRejected
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return validNext[s][next]
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodGateway || m == PaymentMethodCOD
}

// Order is one checkout attempt. ID is a UUID string and doubles as the
// transaction reference on the payment provider side.
type Order struct {
	ID              string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	BuyerID         int64         `gorm:"not null;index" json:"buyer_id"`
	RecipientName   string        `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientPhone  string        `gorm:"type:varchar(32);not null" json:"recipient_phone"`
	ShippingAddress string        `gorm:"type:text;not null" json:"shipping_address"`
	Subtotal        int64         `gorm:"not null" json:"subtotal"`
	Discount        int64         `gorm:"not null" json:"discount"`
	ShippingFee     int64         `gorm:"not null" json:"shipping_fee"`
	Total           int64         `gorm:"not null" json:"total"`
	VoucherCode     *string       `gorm:"type:varchar(64)" json:"voucher_code,omitempty"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentType     *string       `gorm:"type:varchar(40)" json:"payment_type,omitempty"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// MoneyConsistent checks the arithmetic invariant enforced at creation:
// total == subtotal - discount + shipping, all fields non-negative.
func (o Order) MoneyConsistent() bool {
	if o.Subtotal < 0 || o.Discount < 0 || o.ShippingFee < 0 || o.Total < 0 {
		return false
	}
	return o.Total == o.Subtotal-o.Discount+o.ShippingFee
}
