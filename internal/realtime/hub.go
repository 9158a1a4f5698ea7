// Package realtime fans feed invalidations out to per-user subscribers.
package realtime

import (
	"sync"

	"github.com/Fardeen26/flashfeed/pkg/logger"
)

// Hub is an in-process observer registry keyed by user id. Notifications
// coalesce: a subscriber that has not drained its channel sees one pending
// signal no matter how many writes happened.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	logger logger.Logger
}

type subscription struct {
	ch chan struct{}
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*subscription]struct{}),
		logger: log.WithComponent("RealtimeHub"),
	}
}

// Subscribe registers interest in userID's feed. The returned cancel func is
// idempotent and closes the channel.
func (h *Hub) Subscribe(userID string) (<-chan struct{}, func()) {
	sub := &subscription{ch: make(chan struct{}, 1)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[userID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Notify signals every subscriber of the given users without blocking.
func (h *Hub) Notify(userIDs ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range userIDs {
		for sub := range h.subs[id] {
			select {
			case sub.ch <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribers returns how many live subscriptions userID has.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
