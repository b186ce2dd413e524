package event

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "orders.status"

type statusMessage struct {
	OrderID string            `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
	At      time.Time         `json:"at"`
}

// RedisPublisher broadcasts status transitions over a Redis channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) PublishOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	payload, err := json.Marshal(statusMessage{
		OrderID: orderID,
		Status:  status,
		At:      time.Now(),
	})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}
