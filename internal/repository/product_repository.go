package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

// Catalog persistence. Stock mutation goes through InventoryRepository so
// every change lands in the movement ledger.
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}
