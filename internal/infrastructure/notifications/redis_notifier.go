package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:"

// Publisher is the part of the Redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes notifications as JSON on a per-recipient channel
// (notifications:{recipient_id}); the web front-end subscribes to it.
type RedisNotifier struct {
	rdb Publisher
}

var _ interfaces.INotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(rdb Publisher) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Notify(ctx context.Context, notification entities.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.rdb.Publish(ctx, Channel(notification.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", notification.Type, err)
	}
	return nil
}

// Channel is where the notifications of recipientID are published.
func Channel(recipientID string) string {
	return channelPrefix + recipientID
}
