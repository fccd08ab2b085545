package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lineup/internal/shared/goroutine"
	"lineup/internal/shared/logger"
)

const (
	queueChangedChannel = "lineup:queue:changed"
	stateChangedChannel = "lineup:state:changed"
)

// QueueEventKind distinguishes entry changes (joins) from serving
// pointer changes (advance, reset).
type QueueEventKind string

const (
	EventQueueChanged QueueEventKind = "queue_changed"
	EventStateChanged QueueEventKind = "state_changed"
)

// QueueEvent is a content-free change signal. Subscribers reload the
// authoritative state from the store rather than trusting any payload;
// delivery is at-least-once and a lost event is recovered by the next
// poll or reload.
type QueueEvent struct {
	Kind       QueueEventKind `json:"kind"`
	InstanceID string         `json:"instance_id,omitempty"`
	Timestamp  int64          `json:"timestamp"`
}

// QueueEventBus publishes and consumes queue change notifications. The
// application layer sees only the publishing half (ChangeNotifier); the
// websocket display layer consumes via Subscribe.
type QueueEventBus interface {
	NotifyQueueChanged(ctx context.Context) error
	NotifyStateChanged(ctx context.Context) error
	Subscribe(ctx context.Context, handler func(event QueueEvent)) error
}

// RedisQueueEventBus relays change signals across instances via Redis
// Pub/Sub. Events from this instance are not filtered out: the local
// display hub subscribes like everyone else, so every instance,
// publisher included, refreshes the same way.
type RedisQueueEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisQueueEventBus(client *redis.Client, log logger.Interface) *RedisQueueEventBus {
	return &RedisQueueEventBus{
		client:     client,
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisQueueEventBus) NotifyQueueChanged(ctx context.Context) error {
	return b.publish(ctx, queueChangedChannel, EventQueueChanged)
}

func (b *RedisQueueEventBus) NotifyStateChanged(ctx context.Context) error {
	return b.publish(ctx, stateChangedChannel, EventStateChanged)
}

func (b *RedisQueueEventBus) publish(ctx context.Context, channel string, kind QueueEventKind) error {
	event := QueueEvent{
		Kind:       kind,
		InstanceID: b.instanceID,
		Timestamp:  time.Now().UTC().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal queue event: %w", err)
	}

	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish queue event",
			"kind", kind,
			"error", err,
		)
		return fmt.Errorf("failed to publish queue event: %w", err)
	}

	b.logger.Debugw("queue event published", "kind", kind)
	return nil
}

// Subscribe listens on both change channels until ctx is cancelled,
// reconnecting with exponential backoff on subscription failures.
func (b *RedisQueueEventBus) Subscribe(ctx context.Context, handler func(event QueueEvent)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("queue event subscription disconnected, reconnecting",
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisQueueEventBus) subscribe(ctx context.Context, handler func(event QueueEvent)) error {
	pubsub := b.client.Subscribe(ctx, queueChangedChannel, stateChangedChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to queue event channels: %w", err)
	}

	b.logger.Infow("subscribed to queue event channels")

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("queue event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("queue event channel closed")
				return nil
			}

			var event QueueEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal queue event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			goroutine.SafeGo(b.logger, "queue-event-handler", func() {
				handler(event)
			})
		}
	}
}
