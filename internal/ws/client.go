package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/digitduel/digitduel/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one player's connection. Exactly one Client owns each accepted
// websocket; the read pump is the only reader and the write pump the only
// writer.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// mu guards send against queueing after close. The hub may prune this
	// client while its read pump is still producing error replies.
	mu     sync.Mutex
	send   chan []byte
	closed bool

	sessionID  model.SessionID
	playerID   model.PlayerID
	playerName string
}

// newClient wraps an accepted connection
func newClient(hub *Hub, conn *websocket.Conn, sessionID model.SessionID, playerID model.PlayerID, playerName string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		sessionID:  sessionID,
		playerID:   playerID,
		playerName: playerName,
	}
}

// sendEvent queues an event for this connection only. Used for error
// replies that must not reach the other player.
func (c *Client) sendEvent(event Event) {
	c.trySend(event.Encode())
}

// trySend queues a message for the write pump. It reports false if the
// client is closed or its buffer is full; the message is dropped either
// way and the disconnect path cleans up state.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. Later queue attempts become
// no-ops rather than panics, so the hub can prune a client whose read
// pump is still running.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump pumps inbound messages to the dispatcher. It exits when the
// receive fails (peer closed, network loss), which is the one and only
// leave signal.
func (c *Client) readPump(dispatch func(*Client, []byte), disconnect func(*Client)) {
	defer func() {
		disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		dispatch(c, data)
	}
}

// writePump pumps queued messages to the websocket connection and keeps it
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
