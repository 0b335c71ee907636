// Package events provides the in-process event bus feeding the UI surface.
// List views refresh on queue.changed instead of polling the store.
package events

import (
	"sync"
	"time"
)

// Type identifies an application event.
type Type string

const (
	// EventQueueChanged fires after any enqueue or successful sync removal.
	EventQueueChanged Type = "queue.changed"

	// Sync cycle lifecycle events.
	EventSyncStarted   Type = "sync.started"
	EventSyncCompleted Type = "sync.completed"
	EventSyncFailed    Type = "sync.failed"
)

// Event is a published application event.
type Event struct {
	Type      Type                   `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Bus fans events out to subscribers. Delivery is synchronous; handlers must
// not block.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers a handler for every published event and returns an
// unsubscribe function.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers an event to all current subscribers.
func (b *Bus) Publish(eventType Type, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}

	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}
