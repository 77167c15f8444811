package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// RedisPublisher publishes envelopes with Redis PUBLISH.
type RedisPublisher struct {
	client *redis.Client
	now    shared.Clock
}

// NewRedisPublisher wraps an existing client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, now: shared.SystemClock}
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	_, body, err := encode(event, payload, p.now.Now())
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("notify: redis publish %s on %s: %w", event, channel, err)
	}
	return nil
}
