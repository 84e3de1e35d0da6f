package sse

import (
	"sync"
	"sync/atomic"
	"time"
)

const subscriberBuffer = 16

// Event is pushed to every open stream of one user.
type Event struct {
	ID     uint64      `json:"id"`
	UserID string      `json:"user_id"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data"`
	At     time.Time   `json:"at"`
}

// Hub fans tracker events out to the user's open event streams.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	closed      bool
	seq         atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for userID. The returned cleanup must be called exactly once.
// After Shutdown the channel is returned already closed.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.subscribers[userID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers event to every stream of userID. Slow streams drop the event instead of blocking.
func (h *Hub) Publish(userID string, eventType string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	event := Event{
		ID:     h.seq.Add(1),
		UserID: userID,
		Event:  eventType,
		Data:   data,
		At:     time.Now().UTC(),
	}
	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open streams for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// TotalSubscribers returns the number of open streams across all users.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Shutdown closes every stream so handlers can return before the server stops.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for userID, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, userID)
	}
}
