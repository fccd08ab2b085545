package usecases

import (
	"context"
	"time"
)

// RateLimiter gates join attempts per client identity. Best-effort abuse
// mitigation only; implementations must fail open when their backend is
// unreachable.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within the
	// window. When not allowed, retryAfter carries the remaining cooldown.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// ChangeNotifier fans out content-free "something changed" signals to
// observers. Signals are at-least-once and unordered; observers reload
// authoritative state instead of applying deltas.
type ChangeNotifier interface {
	NotifyQueueChanged(ctx context.Context) error
	NotifyStateChanged(ctx context.Context) error
}

type JoinQueueExecutor interface {
	Execute(ctx context.Context, cmd JoinQueueCommand) (*JoinQueueResult, error)
}

type AdvanceQueueExecutor interface {
	Execute(ctx context.Context, cmd AdvanceQueueCommand) (*AdvanceQueueResult, error)
}

type ResetQueueExecutor interface {
	Execute(ctx context.Context, cmd ResetQueueCommand) (*ResetQueueResult, error)
}

type GetQueueStateExecutor interface {
	Execute(ctx context.Context, query GetQueueStateQuery) (*QueueStateResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*TicketResult, error)
}
