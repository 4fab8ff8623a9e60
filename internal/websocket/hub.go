package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/metrics"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Hub maintains the set of currently-open client connections and fans
// notifications out to all of them. It is safe for concurrent use; there is
// no persistence, offline queue, or delivery guarantee.
type Hub struct {
	clients map[string]ClientInterface
	mu      sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]ClientInterface),
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	h.clients[client.ID()] = client
	count := len(h.clients)
	h.mu.Unlock()

	metrics.ConnectedClients.Set(float64(count))

	log.Debug().
		Str("client_id", client.ID()).
		Int("client_count", count).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	_, exists := h.clients[client.ID()]
	if exists {
		delete(h.clients, client.ID())
	}
	count := len(h.clients)
	h.mu.Unlock()

	if exists {
		metrics.ConnectedClients.Set(float64(count))

		log.Debug().
			Str("client_id", client.ID()).
			Int("client_count", count).
			Msg("WebSocket client unregistered")
	}
}

// Broadcast sends a notification to every connected client. Sends are
// fire-and-forget; clients that fail or are already closed are skipped.
func (h *Hub) Broadcast(notification Notification) {
	data, err := notification.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("title", notification.Title).
			Msg("Failed to serialize notification")
		return
	}

	h.mu.RLock()
	if len(h.clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(h.clients))
	for _, client := range h.clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	// Send to each client asynchronously
	for _, client := range clientsCopy {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	metrics.NotificationsTotal.Inc()

	log.Debug().
		Str("title", notification.Title).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast notification")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
