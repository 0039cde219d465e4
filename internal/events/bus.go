// Package events carries decoupled signals between gateway components over a
// closed, enumerated set of names. Order mutations publish here and cache
// owners subscribe.
package events

import "sync"

// Signal names one event kind. The set is fixed; there is no open-ended
// string-keyed registration.
type Signal string

const (
	OrderCreated       Signal = "order.created"
	OrderCancelled     Signal = "order.cancelled"
	OrderStatusUpdated Signal = "order.status_updated"
	ProfileSaved       Signal = "profile.saved"
)

// Payload accompanies a signal. Fields are zero-valued when not applicable.
type Payload struct {
	OrderID   int64
	Principal string
}

// Handler receives published signals. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(Payload)

// Bus is a narrowly-typed in-process pub/sub channel.
type Bus struct {
	mu   sync.RWMutex
	subs map[Signal][]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Signal][]Handler)}
}

// Subscribe registers a handler for the signal.
func (b *Bus) Subscribe(signal Signal, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[signal] = append(b.subs[signal], handler)
}

// Publish delivers the payload to every subscriber of the signal.
func (b *Bus) Publish(signal Signal, payload Payload) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[signal]))
	copy(handlers, b.subs[signal])
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(payload)
	}
}
