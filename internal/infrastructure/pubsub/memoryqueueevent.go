package pubsub

import (
	"context"
	"sync"
	"time"

	"lineup/internal/shared/goroutine"
	"lineup/internal/shared/logger"
)

// MemoryQueueEventBus delivers change signals to subscribers in the same
// process. Used when redis is not configured; a multi-instance
// deployment without redis will not see each other's changes.
type MemoryQueueEventBus struct {
	mu       sync.Mutex
	handlers []func(event QueueEvent)
	logger   logger.Interface
}

func NewMemoryQueueEventBus(log logger.Interface) *MemoryQueueEventBus {
	return &MemoryQueueEventBus{logger: log}
}

func (b *MemoryQueueEventBus) NotifyQueueChanged(_ context.Context) error {
	b.dispatch(EventQueueChanged)
	return nil
}

func (b *MemoryQueueEventBus) NotifyStateChanged(_ context.Context) error {
	b.dispatch(EventStateChanged)
	return nil
}

// Subscribe registers the handler and blocks until ctx is cancelled,
// mirroring the redis bus contract.
func (b *MemoryQueueEventBus) Subscribe(ctx context.Context, handler func(event QueueEvent)) error {
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	b.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

func (b *MemoryQueueEventBus) dispatch(kind QueueEventKind) {
	event := QueueEvent{
		Kind:      kind,
		Timestamp: time.Now().UTC().Unix(),
	}

	b.mu.Lock()
	handlers := make([]func(event QueueEvent), len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler := handler
		goroutine.SafeGo(b.logger, "queue-event-handler", func() {
			handler(event)
		})
	}
}
