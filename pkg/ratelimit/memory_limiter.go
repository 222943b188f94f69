package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps a token bucket per client in process memory.
// It is the default when no redis address is configured.
type MemoryLimiter struct {
	mu      sync.RWMutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(cfg.RequestsPerMinute) / 60.0),
		burst:   cfg.Burst,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, clientID string) (bool, time.Duration, error) {
	limiter := m.limiterFor(clientID)

	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, time.Minute, nil
	}

	delay := reservation.Delay()
	if delay > 0 {
		reservation.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}

func (m *MemoryLimiter) limiterFor(clientID string) *rate.Limiter {
	m.mu.RLock()
	limiter, ok := m.clients[clientID]
	m.mu.RUnlock()
	if ok {
		return limiter
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if limiter, ok := m.clients[clientID]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(m.limit, m.burst)
	m.clients[clientID] = limiter
	return limiter
}
