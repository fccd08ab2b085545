package ratelimit

import (
	"context"
	"time"
)

// JoinLimiter bounds how often a single client may join the queue.
// Allow reports whether the attempt may proceed and, when denied, how
// long the caller should wait before retrying.
type JoinLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}
