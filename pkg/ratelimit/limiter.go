package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a client may proceed. When the answer is no,
// retryAfter tells the client how long to back off.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (allowed bool, retryAfter time.Duration, err error)
}

// Config holds the per-client request budget.
type Config struct {
	RequestsPerMinute int
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		Burst:             10,
	}
}
