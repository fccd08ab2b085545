package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJoinLimiter_Allow(t *testing.T) {
	limiter := NewMemoryJoinLimiter(3, time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	limiter.now = func() time.Time { return now }

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should pass", i+1)
		assert.Zero(t, retryAfter)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)

	// A different key has its own window.
	allowed, _, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)

	// Halfway through the window the wait shrinks accordingly.
	now = base.Add(30 * time.Second)
	allowed, retryAfter, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Second, retryAfter)

	// Once the oldest attempt leaves the window, attempts pass again.
	now = base.Add(61 * time.Second)
	allowed, _, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryJoinLimiter_ZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryJoinLimiter(0, time.Minute)

	for i := 0; i < 10; i++ {
		allowed, _, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
