// Package cart holds the pre-checkout state. The cart is the only entity
// whose canonical copy lives in the gateway; it is ephemeral and session
// scoped, never persisted.
package cart

import (
	"context"
	"sync"
	"time"
)

// Line is one distinct orderable entry, keyed by item identity plus optional
// variant. ItemID is the explicit catalog reference used for order mapping;
// the composite ID exists only for display and dedup.
type Line struct {
	ID        string `json:"id"`
	ItemID    int64  `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Snapshot is a read-consistent copy of one cart with its derived values.
type Snapshot struct {
	Lines     []Line `json:"items"`
	Subtotal  int64  `json:"subtotal"`
	ItemCount int    `json:"itemCount"`
}

type cartState struct {
	lines   []Line
	touched time.Time
}

// Store keeps every session's cart. Mutations are serialized by the store
// lock; a decrement and an increment issued concurrently each apply atomically
// against the prior state.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*cartState
	idleTTL time.Duration
	now     func() time.Time
}

// NewStore builds a cart store whose carts expire after idleTTL without a
// mutation or read.
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = 6 * time.Hour
	}
	return &Store{
		carts:   make(map[string]*cartState),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// AddItem appends a new line with quantity 1, or increments the existing line
// with the same ID. It always succeeds.
func (s *Store) AddItem(sessionID string, line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	for i := range state.lines {
		if state.lines[i].ID == line.ID {
			state.lines[i].Quantity++
			return
		}
	}
	line.Quantity = 1
	state.lines = append(state.lines, line)
}

// IncrementItem raises the quantity of the matching line by 1. Absent IDs are
// a no-op.
func (s *Store) IncrementItem(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	for i := range state.lines {
		if state.lines[i].ID == lineID {
			state.lines[i].Quantity++
			return
		}
	}
}

// DecrementItem lowers the quantity of the matching line by 1; a line never
// stays at zero, it is removed instead.
func (s *Store) DecrementItem(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	for i := range state.lines {
		if state.lines[i].ID == lineID {
			state.lines[i].Quantity--
			if state.lines[i].Quantity <= 0 {
				state.lines = append(state.lines[:i], state.lines[i+1:]...)
			}
			return
		}
	}
}

// RemoveItem drops the matching line regardless of quantity.
func (s *Store) RemoveItem(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	for i := range state.lines {
		if state.lines[i].ID == lineID {
			state.lines = append(state.lines[:i], state.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	state.lines = nil
}

// Get returns a snapshot with subtotal and item count recomputed from the
// lines. Insertion order is preserved.
func (s *Store) Get(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.touch(sessionID)
	lines := make([]Line, len(state.lines))
	copy(lines, state.lines)

	var subtotal int64
	var count int
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
		count += line.Quantity
	}
	return Snapshot{Lines: lines, Subtotal: subtotal, ItemCount: count}
}

// StartJanitor prunes idle carts on the given interval until ctx is done.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.prune()
			}
		}
	}()
}

func (s *Store) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	for id, state := range s.carts {
		if state.touched.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// touch returns the session's cart, creating it on first use. Callers hold
// the store lock.
func (s *Store) touch(sessionID string) *cartState {
	state, ok := s.carts[sessionID]
	if !ok {
		state = &cartState{}
		s.carts[sessionID] = state
	}
	state.touched = s.now()
	return state
}
