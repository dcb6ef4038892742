package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/digitduel/digitduel/internal/api/apierr"
	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/services/session"
)

// Close codes sent before rejecting a connection
const (
	CloseSessionNotFound = 4004
	CloseSessionFull     = 4003
)

// Handler upgrades HTTP requests to websocket connections and bridges them
// to the session registry
type Handler struct {
	registry *session.Registry
	hubs     *HubManager
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler
func NewHandler(registry *session.Registry, hubs *HubManager, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		hubs:     hubs,
		logger:   logger.With(slog.String("component", "ws_handler")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Serve handles GET /sessions/{sessionId}/ws?name=...
//
// The upgrade happens before the join attempt so that join failures can be
// reported with a close code instead of an HTTP status.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["sessionId"])
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Anonymous"
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	player, sess, err := h.registry.Join(r.Context(), sessionID, name)
	if err != nil {
		h.rejectJoin(conn, sessionID, err)
		return
	}

	hub := h.hubs.GetOrCreateHub(sessionID)
	client := newClient(hub, conn, sessionID, player.ID, player.DisplayName)
	hub.Register(client)

	hub.Broadcast(PlayerJoinedEvent(player, sess))

	go client.writePump()
	go client.readPump(h.dispatch, h.disconnect)
}

// rejectJoin closes a fresh connection with the close code matching the
// join failure
func (h *Handler) rejectJoin(conn *websocket.Conn, sessionID model.SessionID, err error) {
	code := websocket.CloseInternalServerErr
	reason := "Internal error"
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		code = CloseSessionNotFound
		reason = "Session not found"
	case errors.Is(err, model.ErrSessionFull):
		code = CloseSessionFull
		reason = "Session is full"
	default:
		h.logger.Error("join failed",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()))
	}

	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	conn.Close()
}

// dispatch routes one inbound message from a client
func (h *Handler) dispatch(c *Client, data []byte) {
	msg, err := model.ParseClientMessage(data)
	if err != nil {
		c.sendEvent(ErrorEvent("Unknown message type"))
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case model.MessageLockNumber:
		sess, err := h.registry.LockNumber(ctx, c.sessionID, c.playerID, msg.Number)
		if err != nil {
			c.sendEvent(ErrorEvent(apierr.Message(err)))
			return
		}
		c.hub.Broadcast(NumberLockedEvent(c.playerID, sess))

	case model.MessageMakeGuess:
		guess, sess, err := h.registry.MakeGuess(ctx, c.sessionID, c.playerID, msg.Guess)
		if err != nil {
			// A guess landing before the opponent locks in is dropped
			// without a reply; the client retries on the next turn.
			if errors.Is(err, model.ErrNoOpponentSecret) {
				return
			}
			c.sendEvent(ErrorEvent(apierr.Message(err)))
			return
		}
		c.hub.Broadcast(GuessMadeEvent(guess, sess))

	case model.MessageChat:
		c.hub.Broadcast(ChatEvent(c.playerID, c.playerName, msg.Message))
	}
}

// disconnect tears down a client's game state after its read pump exits
func (h *Handler) disconnect(c *Client) {
	c.hub.Unregister(c)

	sess, err := h.registry.Leave(context.Background(), c.sessionID, c.playerID)
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) && !errors.Is(err, model.ErrNotInSession) {
			h.logger.Error("leave failed",
				slog.String("session_id", string(c.sessionID)),
				slog.String("player_id", string(c.playerID)),
				slog.String("error", err.Error()))
		}
		return
	}

	if sess == nil {
		// Last player out, session destroyed
		h.hubs.RemoveHub(c.sessionID)
		return
	}

	c.hub.Broadcast(PlayerLeftEvent(c.playerID, c.playerName, sess))
}
