package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// SessionStatus represents the current phase of a session
type SessionStatus string

const (
	SessionStatusWaiting    SessionStatus = "waiting"     // Below capacity, accepting players
	SessionStatusReady      SessionStatus = "ready"       // Full; players choosing secret codes
	SessionStatusInProgress SessionStatus = "in_progress" // Both codes locked, alternating guesses
	SessionStatusCompleted  SessionStatus = "completed"   // Winner decided
)

// MaxPlayers is the fixed session capacity. The protocol is pairwise.
const MaxPlayers = 2

// GameSession is one pairwise game instance: its player set, phase,
// turn holder, and guess history. Player order is join order; the first
// joiner takes the first turn.
type GameSession struct {
	ID        SessionID
	CreatedAt time.Time

	Players []Player
	Status  SessionStatus

	// CurrentTurn holds the id of the player allowed to guess.
	// Empty until the session enters in_progress.
	CurrentTurn PlayerID

	// Guesses is append-only, ordered by submission.
	Guesses []Guess

	// Winner is empty until decided; set atomically with the completed status.
	Winner PlayerID
}

// GetPlayer returns the player with the given id, or nil if not present
func (s *GameSession) GetPlayer(id PlayerID) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Opponent returns the other player, or nil if the session holds fewer
// than two players
func (s *GameSession) Opponent(id PlayerID) *Player {
	for i := range s.Players {
		if s.Players[i].ID != id {
			return &s.Players[i]
		}
	}
	return nil
}

// IsFull reports whether the session has reached capacity
func (s *GameSession) IsFull() bool {
	return len(s.Players) >= MaxPlayers
}

// AllReady reports whether every player has locked a secret code
func (s *GameSession) AllReady() bool {
	if len(s.Players) == 0 {
		return false
	}
	for i := range s.Players {
		if !s.Players[i].IsReady {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the session. Read paths hand out clones so
// callers never observe a partially applied mutation.
func (s *GameSession) Clone() *GameSession {
	c := *s
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	c.Guesses = make([]Guess, len(s.Guesses))
	copy(c.Guesses, s.Guesses)
	return &c
}
