package notify

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub fans out per-user events to live SSE subscribers. Delivery is best
// effort: a subscriber that cannot keep up drops events instead of blocking
// the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
	log  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[chan []byte]struct{}),
		log:  log.With(zap.String("component", "notify_hub")),
	}
}

// Subscribe registers a listener for one user and returns the event channel
// plus a cancel func. Cancel is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan []byte, func()) {
	ch := make(chan []byte, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan []byte]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[userID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Push marshals payload and delivers it to every live subscriber of userID.
func (h *Hub) Push(userID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("Failed to marshal push payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- data:
		default:
			// slow consumer, drop
		}
	}
}

// Subscribers reports the number of live channels for a user.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
