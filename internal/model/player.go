package model

import "time"

// PlayerID uniquely identifies a player within a session
type PlayerID string

// Player represents a participant in a game session.
// SecretCode is private state: it must never appear in any payload that
// leaves the process. The wire representation lives in api/response.
type Player struct {
	ID          PlayerID
	DisplayName string
	JoinedAt    time.Time

	// SecretCode is the player's locked 4-digit code. Empty until locked;
	// immutable for the rest of the session once IsReady is true.
	SecretCode string
	IsReady    bool
}
