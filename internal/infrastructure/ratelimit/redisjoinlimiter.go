package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisJoinLimiter is a sliding-window limiter backed by a redis sorted
// set per client key. Entries are scored by nanosecond timestamp; each
// check trims everything older than the window before counting.
type RedisJoinLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisJoinLimiter(client *redis.Client, limit int, window time.Duration) *RedisJoinLimiter {
	return &RedisJoinLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisJoinLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.limit <= 0 {
		return true, 0, nil
	}

	now := time.Now()
	redisKey := l.redisKey(key)
	windowStart := now.Add(-l.window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	if zcard.Val() >= int64(l.limit) {
		retryAfter := l.window
		if entries := oldest.Val(); len(entries) > 0 {
			oldestAt := time.Unix(0, int64(entries[0].Score))
			retryAfter = l.window - now.Sub(oldestAt)
		}
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter, nil
	}

	pipe = l.client.Pipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to record attempt: %w", err)
	}

	return true, 0, nil
}

func (l *RedisJoinLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset limiter key: %w", err)
	}
	return nil
}

func (l *RedisJoinLimiter) redisKey(key string) string {
	return fmt.Sprintf("lineup:joinlimit:%s", key)
}
