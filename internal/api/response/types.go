// Package response defines the sanitized wire representations of domain
// types. Player deliberately has no secret-code field at all, so no
// broadcast or HTTP payload can ever leak a secret.
package response

import (
	"time"

	"github.com/digitduel/digitduel/internal/model"
)

// Player represents a player in API and event payloads
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	IsReady  bool      `json:"is_ready"`
}

// PlayerFromModel converts a model.Player to its sanitized view
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Name:     p.DisplayName,
		JoinedAt: p.JoinedAt,
		IsReady:  p.IsReady,
	}
}

// Guess represents one evaluated guess
type Guess struct {
	PlayerID         string    `json:"player_id"`
	PlayerName       string    `json:"player_name"`
	Guess            string    `json:"guess"`
	CorrectDigits    int       `json:"correct_digits"`
	CorrectPositions int       `json:"correct_positions"`
	Timestamp        time.Time `json:"timestamp"`
}

// GuessFromModel converts a model.Guess
func GuessFromModel(g model.Guess) Guess {
	return Guess{
		PlayerID:         string(g.PlayerID),
		PlayerName:       g.PlayerName,
		Guess:            g.Guess,
		CorrectDigits:    g.CorrectDigits,
		CorrectPositions: g.CorrectPositions,
		Timestamp:        g.Timestamp,
	}
}

// Session represents a session in API and event payloads
type Session struct {
	ID          string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	Players     []Player  `json:"players"`
	MaxPlayers  int       `json:"max_players"`
	Status      string    `json:"status"`
	CurrentTurn string    `json:"current_turn"`
	Guesses     []Guess   `json:"guesses"`
	Winner      string    `json:"winner"`
}

// SessionFromModel converts a model.GameSession to its sanitized view
func SessionFromModel(s *model.GameSession) Session {
	players := make([]Player, len(s.Players))
	for i := range s.Players {
		players[i] = PlayerFromModel(&s.Players[i])
	}

	guesses := make([]Guess, len(s.Guesses))
	for i, g := range s.Guesses {
		guesses[i] = GuessFromModel(g)
	}

	return Session{
		ID:          string(s.ID),
		CreatedAt:   s.CreatedAt,
		Players:     players,
		MaxPlayers:  model.MaxPlayers,
		Status:      string(s.Status),
		CurrentTurn: string(s.CurrentTurn),
		Guesses:     guesses,
		Winner:      string(s.Winner),
	}
}

// SessionList wraps the session listing
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// SessionListFromModels converts a slice of sessions
func SessionListFromModels(sessions []*model.GameSession) SessionList {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return SessionList{Sessions: out}
}
