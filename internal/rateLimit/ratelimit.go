package rateLimit

import (
	"context"
	"time"
)

// Counter is the shared store behind the limiter; adapters/redis.WindowCounter
// implements it.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimiter struct {
	counter Counter
	rate    int
	period  time.Duration
}

// NewRateLimiter allows rate hits per key in every period.
func NewRateLimiter(counter Counter, rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, rate: rate, period: period}
}

// Allow reports whether key is still within its budget. On a store error it
// returns false together with the error and lets the caller decide.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := rl.counter.Incr(ctx, key, rl.period)
	if err != nil {
		return false, err
	}
	return n <= int64(rl.rate), nil
}
