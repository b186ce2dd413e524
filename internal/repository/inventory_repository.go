package repository

import (
	"context"

	"app/internal/domain/model"
)

type StockMovementFilter struct {
	ProductID *int64
	OrderID   *string
	Reason    *model.StockReason
	Limit     int
	Offset    int
}

type InventoryRepository interface {
	GetStock(ctx context.Context, productID int64) (int64, error)
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// CreateMovement appends to the ledger. Movements are never updated or
	// deleted afterwards.
	CreateMovement(ctx context.Context, m model.StockMovement) error
	ListMovements(ctx context.Context, f StockMovementFilter) ([]model.StockMovement, error)

	// SaleMovementsExist reports whether the paid-order stock decrement was
	// applied for this order. Used to decide whether a cancellation/return
	// needs a restock.
	SaleMovementsExist(ctx context.Context, orderID string) (bool, error)
}
