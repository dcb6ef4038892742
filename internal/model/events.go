package model

// EventType identifies an outbound event broadcast to session connections
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventNumberLocked EventType = "number_locked"
	EventGuessMade    EventType = "guess_made"
	EventPlayerLeft   EventType = "player_left"
	EventChat         EventType = "chat"
	EventError        EventType = "error"
)
