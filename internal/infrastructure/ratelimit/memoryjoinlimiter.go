package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryJoinLimiter keeps per-key attempt timestamps in process memory.
// It is used when redis is not configured; limits then apply per
// instance rather than across the deployment.
type MemoryJoinLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryJoinLimiter(limit int, window time.Duration) *MemoryJoinLimiter {
	return &MemoryJoinLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryJoinLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.limit <= 0 {
		return true, 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.attempts[key][:0]
	for _, at := range l.attempts[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= l.limit {
		l.attempts[key] = recent
		retryAfter := l.window - now.Sub(recent[0])
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter, nil
	}

	l.attempts[key] = append(recent, now)
	return true, 0, nil
}
