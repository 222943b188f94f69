package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter counts requests in fixed one-minute windows, shared
// across server instances.
type RedisLimiter struct {
	client *redis.Client
	limit  int
}

func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  cfg.RequestsPerMinute,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, time.Duration, error) {
	now := time.Now()
	window := now.Truncate(time.Minute)
	key := fmt.Sprintf("%s%s:%d", redisKeyPrefix, clientID, window.Unix())

	pipe := r.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if count.Val() > int64(r.limit) {
		retryAfter := window.Add(time.Minute).Sub(now)
		return false, retryAfter, nil
	}
	return true, 0, nil
}
