// Package ws pushes queue change notifications to connected displays.
// Clients receive content-free refresh signals and reload the board via
// the HTTP read endpoints; the socket never carries queue data itself.
package ws

import (
	"context"
	"encoding/json"

	"lineup/internal/infrastructure/pubsub"
	"lineup/internal/shared/goroutine"
	"lineup/internal/shared/logger"
)

// DisplayMessage is the frame sent to displays on every queue change.
type DisplayMessage struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
}

// Hub fans change notifications out to registered display connections.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     logger.Interface
}

func NewHub(log logger.Interface) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run owns the client set; all registration and broadcast goes through
// its channels. Blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			close(h.done)
			h.logger.Infow("display hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debugw("display connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debugw("display disconnected", "clients", len(h.clients))

		case message := <-h.broadcast:
			// A full send buffer means the display is dead or stuck;
			// drop it rather than block every other display.
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// attach hands a connection to the hub. Returns false if the hub has
// already stopped, so connection handlers never block on a dead hub.
func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// detach removes a connection; a stopped hub has already closed every
// client, so there is nothing left to do.
func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a refresh signal for every connected display.
func (h *Hub) Broadcast(event string, timestamp int64) {
	msg := DisplayMessage{
		Event:     event,
		Timestamp: timestamp,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorw("failed to marshal display message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warnw("display broadcast channel full, dropping event", "event", event)
	}
}

// ListenQueueEvents wires the hub to the change notification stream.
// Runs until ctx is cancelled.
func (h *Hub) ListenQueueEvents(ctx context.Context, bus pubsub.QueueEventBus) {
	goroutine.SafeGo(h.logger, "display-hub-subscriber", func() {
		err := bus.Subscribe(ctx, func(event pubsub.QueueEvent) {
			h.Broadcast(string(event.Kind), event.Timestamp)
		})
		if err != nil && ctx.Err() == nil {
			h.logger.Errorw("queue event subscription ended", "error", err)
		}
	})
}
