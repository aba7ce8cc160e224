package sse

import (
	"log/slog"
	"sync"
)

// Hub fans events out to every open stream of a user. A stream whose buffer
// is full misses the event; publishers never block.
type Hub[T any] struct {
	mu      sync.RWMutex
	streams map[string]map[chan T]struct{}
	buffer  int
}

func NewHub[T any](buffer int) *Hub[T] {
	if buffer < 1 {
		buffer = 10
	}
	return &Hub[T]{
		streams: make(map[string]map[chan T]struct{}),
		buffer:  buffer,
	}
}

// Subscribe opens a stream for userID. The returned func closes it and may be
// called more than once.
func (h *Hub[T]) Subscribe(userID string) (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, h.buffer)
	if h.streams[userID] == nil {
		h.streams[userID] = make(map[chan T]struct{})
	}
	h.streams[userID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.streams[userID], ch)
			close(ch)
			if len(h.streams[userID]) == 0 {
				delete(h.streams, userID)
			}
		})
	}
}

// Publish returns how many streams received the event.
func (h *Hub[T]) Publish(userID string, event T) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.streams[userID] {
		select {
		case ch <- event:
			delivered++
		default:
			slog.Warn("SSE stream buffer full, event dropped", "user_id", userID)
		}
	}
	return delivered
}

// SubscriberCount returns the number of open streams of a user.
func (h *Hub[T]) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[userID])
}

func (h *Hub[T]) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.streams {
		total += len(subs)
	}
	return total
}
