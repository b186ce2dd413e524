package repository

import (
	"context"

	"app/internal/domain/model"
)

type CancellationRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (model.Cancellation, error)
	Create(ctx context.Context, c model.Cancellation) (int64, error)
	Update(ctx context.Context, c model.Cancellation) error
}

type ReturnRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (model.ReturnRequest, error)
	Create(ctx context.Context, r model.ReturnRequest) (int64, error)
	Update(ctx context.Context, r model.ReturnRequest) error
}
