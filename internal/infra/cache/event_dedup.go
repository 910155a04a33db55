package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const dedupPrefix = "webhook:event:"

// EventDedup remembers processed webhook event ids in Redis.
type EventDedup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventDedup(url string, ttl time.Duration) (*EventDedup, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewEventDedupWithClient(redis.NewClient(opts), ttl), nil
}

func NewEventDedupWithClient(client *redis.Client, ttl time.Duration) *EventDedup {
	return &EventDedup{client: client, ttl: ttl}
}

func dedupKey(eventID string) string {
	return dedupPrefix + eventID
}

func (d *EventDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (d *EventDedup) Remember(ctx context.Context, eventID string) error {
	if err := d.client.Set(ctx, dedupKey(eventID), time.Now().UTC().Unix(), d.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (d *EventDedup) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *EventDedup) Close() error {
	return d.client.Close()
}
