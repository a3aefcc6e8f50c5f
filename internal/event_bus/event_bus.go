package event_bus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events.
type EventType string

// Event is the generic envelope used by the bus. Data is kept as any to allow
// different payload types on the same bus.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent creates a new Event with the given context, type, and data.
// The timestamp is set to the current time automatically.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context associated with this event.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// handler is the internal shape for subscribers: a function that accepts the generic Event.
type handler func(Event) error

// EventBus is a concurrency-safe synchronous event dispatcher. All handlers
// are executed sequentially during Publish, which is what gives refresh
// notifications their ordering guarantee: a vault-changed event has fully
// rebuilt every subscribed view snapshot before Publish returns.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[uint64]handler
	nextID      uint64
}

// NewEventBus creates an empty EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType]map[uint64]handler),
	}
}

// Subscribe registers a handler for the given eventType. It returns an
// unsubscribe function that removes the handler when called.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID

	if eb.subscribers[eventType] == nil {
		eb.subscribers[eventType] = make(map[uint64]handler)
	}
	eb.subscribers[eventType][id] = handler(h)
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		if handlers := eb.subscribers[eventType]; handlers != nil {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(eb.subscribers, eventType)
			}
		}
	}
}

// Publish sends the event to all handlers registered for event.Type
// synchronously, in registration order. Handler errors are collected and
// returned as a single error; panics are recovered and treated as errors.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	handlers := make([]struct {
		id uint64
		h  handler
	}, 0, len(eb.subscribers[e.Type]))
	for id, h := range eb.subscribers[e.Type] {
		handlers = append(handlers, struct {
			id uint64
			h  handler
		}{id, h})
	}
	eb.mu.RUnlock()

	// Subscription ids are monotonically increasing, so sorting restores
	// registration order after the map collection above.
	sort.Slice(handlers, func(i, j int) bool { return handlers[i].id < handlers[j].id })

	var errors []error
	for _, handler := range handlers {
		if err := e.Context().Err(); err != nil {
			errors = append(errors, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}

		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic (ID %d) for event %s: %v",
						handler.id, e.Type, r)
					log.Error(err)
				}
			}()
			return handler.h(e)
		}()

		if err != nil {
			log.Errorf("EventBus: handler error (ID %d) for event %s: %v",
				handler.id, e.Type, err)
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %v", e.Type, len(errors), errors)
	}

	return nil
}
