package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes the state of a fixed window after a hit
type RateLimitResult struct {
	Allowed   bool
	Count     int64
	Remaining int64
	ResetIn   time.Duration
}

// FixedWindowLimiter counts hits per key in a window that starts on the first hit.
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing limit hits per window for each key
func NewFixedWindowLimiter(client *redis.Client, prefix string, limit int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow registers one hit for key.
// On a Redis failure the error is returned together with an allowing result.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	open := RateLimitResult{Allowed: true, Remaining: l.limit, ResetIn: l.window}

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return open, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return open, err
		}
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		// a key left without expiry would block the client forever
		_ = l.client.Expire(ctx, redisKey, l.window).Err()
		ttl = l.window
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   count <= l.limit,
		Count:     count,
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}

// Limit returns the number of hits allowed per window
func (l *FixedWindowLimiter) Limit() int64 {
	return l.limit
}
