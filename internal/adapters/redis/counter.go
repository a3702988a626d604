package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key in fixed windows that expire on their own.
type WindowCounter struct {
	client *redis.Client
	prefix string
}

func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client, prefix: "rl:"}
}

// Incr bumps key and returns the count within the current window. The
// window starts on the first hit.
func (c *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := c.prefix + key

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *WindowCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
