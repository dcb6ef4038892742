package ws

import (
	"log/slog"
	"sync"

	"github.com/digitduel/digitduel/internal/model"
)

// Hub fans events out to every live connection of one session. Deliveries
// are independent: a client whose send buffer is full is pruned from the
// hub without delaying or aborting delivery to the others. Pruning is
// transport cleanup only; player state is reconciled separately by the
// disconnect path.
type Hub struct {
	sessionID model.SessionID
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a session
func NewHub(sessionID model.SessionID, logger *slog.Logger) *Hub {
	return &Hub{
		sessionID:  sessionID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("session_id", string(sessionID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("connection registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_connections", count))

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var pruned []*Client
			for client := range h.clients {
				if !client.trySend(message) {
					pruned = append(pruned, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range pruned {
				h.logger.Warn("connection pruned, send buffer full",
					slog.String("player_id", string(client.playerID)))
				h.removeClient(client)
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped")
			return
		}
	}
}

// removeClient deregisters a client and closes its send channel
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.close()
		h.logger.Info("connection unregistered",
			slog.String("player_id", string(client.playerID)),
			slog.Int("total_connections", len(h.clients)))
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast delivers an event to every registered connection
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event.Encode():
	case <-h.done:
	}
}

// Close shuts down the hub and disconnects all clients
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager owns the session id -> hub mapping
type HubManager struct {
	hubs   map[model.SessionID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.SessionID]*Hub),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// GetOrCreateHub returns the hub for a session, creating and starting one
// if it doesn't exist
func (m *HubManager) GetOrCreateHub(sessionID model.SessionID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[sessionID]; ok {
		return hub
	}

	hub := NewHub(sessionID, m.logger)
	m.hubs[sessionID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a session, or nil if it doesn't exist
func (m *HubManager) GetHub(sessionID model.SessionID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[sessionID]
}

// RemoveHub removes and closes a hub. Called when its session is destroyed.
func (m *HubManager) RemoveHub(sessionID model.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[sessionID]; ok {
		hub.Close()
		delete(m.hubs, sessionID)
		m.logger.Info("hub removed", slog.String("session_id", string(sessionID)))
	}
}
