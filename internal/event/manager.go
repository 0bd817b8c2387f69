// Package event implements a small synchronous publish/subscribe bus
// connecting the core editor to the UI layer.
package event

import (
	"sync"

	"github.com/scribe-editor/scribe/internal/logger"
)

// Handler processes an event. Returning true stops propagation to
// later handlers.
type Handler func(e Event) bool

// Manager dispatches events to subscribed handlers.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch sends an event to all handlers subscribed to its type.
// Handlers run synchronously on the caller's goroutine, in subscription
// order, until one of them claims the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	subscribed := m.handlers[eventType]
	handlersCopy := make([]Handler, len(subscribed))
	copy(handlersCopy, subscribed)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}

	ev := Event{Type: eventType, Data: data}
	for _, h := range handlersCopy {
		if h(ev) {
			logger.Debugf("event: type %d claimed by handler", eventType)
			break
		}
	}
}
