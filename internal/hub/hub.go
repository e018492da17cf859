// Package hub tracks which users currently hold a live push channel and
// fans text messages out to all of a user's channels. Registration and
// unregistration happen on connection lifecycle events while sends come from
// the reminder scheduler, so every map mutation is serialized behind one
// lock.
package hub

import (
	"sync"

	"billtrack/pkg/logger"
)

// Channel is one live client connection capable of receiving text pushes.
type Channel interface {
	WriteText(message string) error
}

type Hub struct {
	mu       sync.RWMutex
	channels map[string][]Channel
	log      *logger.Logger
}

func New(log *logger.Logger) *Hub {
	return &Hub{
		channels: make(map[string][]Channel),
		log:      log,
	}
}

func (h *Hub) Register(userID string, ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels[userID] = append(h.channels[userID], ch)
}

// Unregister removes the specific channel. Removing a channel that was never
// registered is a no-op. The user's entry disappears entirely once its last
// channel is gone.
func (h *Hub) Unregister(userID string, ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chans := h.channels[userID]
	for i, c := range chans {
		if c == ch {
			chans = append(chans[:i], chans[i+1:]...)
			break
		}
	}

	if len(chans) == 0 {
		delete(h.channels, userID)
	} else {
		h.channels[userID] = chans
	}
}

// SendToUser delivers message to every channel registered for userID. An
// offline user is a no-op. A write failure on one channel is logged and does
// not stop delivery to the rest.
func (h *Hub) SendToUser(userID, message string) {
	h.mu.RLock()
	chans := make([]Channel, len(h.channels[userID]))
	copy(chans, h.channels[userID])
	h.mu.RUnlock()

	for _, ch := range chans {
		if err := ch.WriteText(message); err != nil {
			h.log.Warn("Failed to push notification to a channel of user %s: %v", userID, err)
		}
	}
}

// ConnectionCount reports the number of live channels for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[userID])
}
