// Package redisbus publishes inventory events to a Redis channel so UI
// clients and alert consumers can subscribe without polling.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/labstock-api/internal/application/inventory"
	"github.com/jhoicas/labstock-api/pkg/config"
)

var _ inventory.Notifier = (*Notifier)(nil)

// envelope is the wire shape published on the channel.
type envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Notifier publishes JSON events over Redis PUB/SUB.
type Notifier struct {
	client  *redis.Client
	channel string
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig) (*Notifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Notifier{client: client, channel: cfg.Channel}, nil
}

// Publish sends the event on the configured channel. Delivery is fire and
// forget; subscribers that are offline miss the event.
func (n *Notifier) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(envelope{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, body).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (n *Notifier) Close() error {
	return n.client.Close()
}

// NoopNotifier drops every event. Wired when Redis is not configured.
type NoopNotifier struct{}

var _ inventory.Notifier = NoopNotifier{}

func (NoopNotifier) Publish(context.Context, string, any) error { return nil }
