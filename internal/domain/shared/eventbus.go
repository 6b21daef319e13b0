package shared

import (
	"context"
	"sync"
)

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// InMemoryEventBus dispatches events synchronously to registered handlers.
// Handler errors do not abort the publishing transaction; the mailer and
// export collaborators listen here after commits succeed.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	catchAll []EventHandler
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe registers a handler for specific event types.
// If no event types are provided, the handler receives all events.
func (b *InMemoryEventBus) Subscribe(handler EventHandler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		b.catchAll = append(b.catchAll, handler)
		return
	}
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

// Publish delivers the events to every subscribed handler.
// The first handler error is returned after all handlers have run.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...DomainEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var firstErr error
	for _, event := range events {
		for _, h := range b.handlers[event.EventType()] {
			if err := h.Handle(ctx, event); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		for _, h := range b.catchAll {
			if err := h.Handle(ctx, event); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

var _ EventBus = (*InMemoryEventBus)(nil)
