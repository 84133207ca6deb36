package feed

import (
	"context"
	"encoding/json"
	"sync"

	"aura/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventSource yields published admin events until ctx is done.
type EventSource interface {
	Events(ctx context.Context) <-chan models.Event
}

// SourceFunc adapts a function to EventSource.
type SourceFunc func(ctx context.Context) <-chan models.Event

func (f SourceFunc) Events(ctx context.Context) <-chan models.Event { return f(ctx) }

// Subscriber opens the admin events Redis channel.
type Subscriber interface {
	SubscribeEvents(ctx context.Context) *redis.PubSub
}

// RedisSource decodes events from Redis pub/sub.
func RedisSource(sub Subscriber, log *zap.SugaredLogger) EventSource {
	return SourceFunc(func(ctx context.Context) <-chan models.Event {
		out := make(chan models.Event)
		pubsub := sub.SubscribeEvents(ctx)

		go func() {
			defer close(out)
			defer pubsub.Close()

			ch := pubsub.Channel()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-ch:
					if !ok {
						return
					}
					var event models.Event
					if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
						log.Warnw("Dropping undecodable admin event", "error", err)
						continue
					}
					select {
					case out <- event:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
		return out
	})
}

// Hub fans events out to registered clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	source EventSource
	log    *zap.SugaredLogger
	done   chan struct{}
}

func NewHub(source EventSource, log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		source:       source,
		log:          log,
		done:         make(chan struct{}),
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	events := h.source.Events(ctx)

	defer func() {
		close(h.done)
		h.mu.Lock()
		for id, c := range h.clients {
			c.Close()
			delete(h.clients, id)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.RegisterCh:
			h.mu.Lock()
			h.clients[c.GetClientID()] = c
			h.mu.Unlock()
			h.log.Debugw("Feed client registered", "client_id", c.GetClientID())

		case c := <-h.UnregisterCh:
			h.remove(c.GetClientID())

		case event, ok := <-events:
			if !ok {
				h.log.Warnw("Admin event source closed")
				events = nil
				continue
			}
			h.broadcast(event)
		}
	}
}

func (h *Hub) broadcast(event models.Event) {
	h.mu.RLock()
	var slow []string
	for id, c := range h.clients {
		select {
		case c.GetSendChannel() <- event:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		h.log.Warnw("Dropping slow feed client", "client_id", id)
		h.remove(id)
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		c.Close()
	}
}
