package ws

import (
	"encoding/json"

	"github.com/digitduel/digitduel/internal/api/response"
	"github.com/digitduel/digitduel/internal/model"
)

// Event is the closed set of outbound messages pushed to connections.
// Every payload is built from the sanitized response types, so no event
// can carry a secret code.
type Event struct {
	Type model.EventType `json:"type"`

	PlayerID   string            `json:"player_id,omitempty"`
	PlayerName string            `json:"player_name,omitempty"`
	Player     *response.Player  `json:"player,omitempty"`
	Guess      *response.Guess   `json:"guess,omitempty"`
	Session    *response.Session `json:"session,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Encode marshals the event for the wire
func (e Event) Encode() []byte {
	data, _ := json.Marshal(e)
	return data
}

// PlayerJoinedEvent announces a new player. The joining player reads their
// own id from the player_id field.
func PlayerJoinedEvent(player *model.Player, session *model.GameSession) Event {
	p := response.PlayerFromModel(player)
	s := response.SessionFromModel(session)
	return Event{
		Type:     model.EventPlayerJoined,
		PlayerID: string(player.ID),
		Player:   &p,
		Session:  &s,
	}
}

// NumberLockedEvent announces that a player committed their secret code
func NumberLockedEvent(playerID model.PlayerID, session *model.GameSession) Event {
	s := response.SessionFromModel(session)
	return Event{
		Type:     model.EventNumberLocked,
		PlayerID: string(playerID),
		Session:  &s,
	}
}

// GuessMadeEvent announces an evaluated guess
func GuessMadeEvent(g *model.Guess, session *model.GameSession) Event {
	guess := response.GuessFromModel(*g)
	s := response.SessionFromModel(session)
	return Event{
		Type:    model.EventGuessMade,
		Guess:   &guess,
		Session: &s,
	}
}

// PlayerLeftEvent announces a disconnect. Session is nil when the session
// was destroyed with the departing player.
func PlayerLeftEvent(playerID model.PlayerID, playerName string, session *model.GameSession) Event {
	ev := Event{
		Type:       model.EventPlayerLeft,
		PlayerID:   string(playerID),
		PlayerName: playerName,
	}
	if session != nil {
		s := response.SessionFromModel(session)
		ev.Session = &s
	}
	return ev
}

// ChatEvent relays a chat message unchanged
func ChatEvent(playerID model.PlayerID, playerName, message string) Event {
	return Event{
		Type:       model.EventChat,
		PlayerID:   string(playerID),
		PlayerName: playerName,
		Message:    message,
	}
}

// ErrorEvent is sent only to the offending connection
func ErrorEvent(message string) Event {
	return Event{
		Type:    model.EventError,
		Message: message,
	}
}
