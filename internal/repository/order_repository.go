package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page    int
	Limit   int
	Status  string
	BuyerID *int64
	From    *time.Time
	To      *time.Time
}

// Report projections. Read-only, no side effects.
type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

type BestSeller struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int64  `json:"units_sold"`
}

type LoyalBuyer struct {
	BuyerID int64 `json:"buyer_id"`
	Orders  int64 `json:"orders"`
	Spent   int64 `json:"spent"`
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByBuyerID(ctx context.Context, buyerID int64, page int, limit int) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// UpdateStatus is a direct set used by staff tooling; callers validate the
	// transition against the state machine first.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	// MarkProcessingIfPending moves pending -> processing in a single
	// conditional update. false means another delivery of the payment signal
	// already handled the order (or it left pending some other way).
	MarkProcessingIfPending(ctx context.Context, orderID string) (bool, error)

	// MarkCancelled moves any non-terminal status to cancelled. false means
	// the order was already terminal.
	MarkCancelled(ctx context.Context, orderID string) (bool, error)

	// SetPaymentType records the payment type observed from the provider.
	// Pure metadata, applied regardless of the status branch taken.
	SetPaymentType(ctx context.Context, orderID string, paymentType string) error

	RevenueBetween(ctx context.Context, from time.Time, to time.Time) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	BestSellers(ctx context.Context, limit int) ([]BestSeller, error)
	LoyalBuyers(ctx context.Context, limit int) ([]LoyalBuyer, error)
}
