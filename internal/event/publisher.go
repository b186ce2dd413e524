package event

import (
	"context"

	"app/internal/domain/model"
)

// StatusPublisher pushes committed order-status transitions to connected
// clients. Injected so business code never reaches into a global channel.
type StatusPublisher interface {
	PublishOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// NopPublisher drops events. Used in tests and when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return nil
}
