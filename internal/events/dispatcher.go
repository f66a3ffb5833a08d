package events

import (
	"context"
	"sync"
)

// EventHandler consumes a published event. A handler error never stops
// delivery to the remaining handlers.
type EventHandler func(context.Context, Event) error

// Dispatcher publishes record lifecycle events to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// memoryDispatcher delivers events synchronously, in process.
type memoryDispatcher struct {
	mu   sync.RWMutex
	subs map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryDispatcher{subs: make(map[EventType][]EventHandler)}
}

// Publish invokes every handler subscribed to the event's type. Handler
// errors are swallowed so one bad consumer cannot block the others.
func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]EventHandler, len(d.subs[event.Type]))
	copy(handlers, d.subs[event.Type])
	d.mu.RUnlock()

	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *memoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[eventType] = append(d.subs[eventType], handler)
}
