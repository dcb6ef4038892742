// Package session implements the session registry and per-session state
// machine: creation, join/leave, number locking, turn-enforced guessing.
// All mutations to one session are serialized behind a per-session mutex;
// read paths hand out snapshots.
package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/digitduel/digitduel/internal/dependencies/clock"
	"github.com/digitduel/digitduel/internal/dependencies/random"
	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/services/guess"
	"github.com/digitduel/digitduel/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 8
	// SessionIDAlphabet matches the short-uuid style of session ids
	SessionIDAlphabet = "0123456789abcdef"
)

// Registry owns the session id -> session mapping and drives every session
// state transition. It is the single mutation point for session state.
type Registry struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *sessionLocks
}

// NewRegistry creates a new session registry
func NewRegistry(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "session-registry")),
		locks:   newSessionLocks(),
	}
}

// Create inserts a new empty session in the waiting state and returns it
func (r *Registry) Create(ctx context.Context) (*model.GameSession, error) {
	var id model.SessionID
	for {
		id = model.SessionID(r.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := r.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.GameSession{
		ID:        id,
		CreatedAt: r.clock.Now(),
		Players:   []model.Player{},
		Status:    model.SessionStatusWaiting,
		Guesses:   []model.Guess{},
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	r.logger.Info("session created", slog.String("session_id", string(id)))
	return session, nil
}

// Get retrieves a session snapshot by id
func (r *Registry) Get(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return r.storage.GetSession(ctx, id)
}

// List returns snapshots of all live sessions
func (r *Registry) List(ctx context.Context) ([]*model.GameSession, error) {
	return r.storage.ListSessions(ctx)
}

// Join adds a player to a session. It fails with ErrSessionNotFound or
// ErrSessionFull before any state is touched; on success the new player and
// the updated session are returned, and the session moves to ready once at
// capacity.
func (r *Registry) Join(ctx context.Context, id model.SessionID, displayName string) (*model.Player, *model.GameSession, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	session, err := r.storage.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if session.IsFull() {
		return nil, nil, model.ErrSessionFull
	}

	player := model.Player{
		ID:          model.PlayerID(uuid.NewString()[:8]),
		DisplayName: displayName,
		JoinedAt:    r.clock.Now(),
	}
	session.Players = append(session.Players, player)

	if session.IsFull() {
		session.Status = model.SessionStatusReady
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	r.logger.Info("player joined",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(player.ID)),
		slog.String("player_name", displayName),
		slog.Int("player_count", len(session.Players)),
	)

	return &player, session, nil
}

// LockNumber commits a player's secret code. The code is write-once: once
// a player is ready their secret is immutable for the rest of the session.
// When every player has locked, the session enters in_progress and the
// first-joined player takes the turn.
func (r *Registry) LockNumber(ctx context.Context, id model.SessionID, playerID model.PlayerID, code string) (*model.GameSession, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	session, err := r.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	player := session.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrNotInSession
	}
	if player.IsReady {
		return nil, model.ErrNumberLocked
	}

	if err := guess.ValidateCode(code); err != nil {
		return nil, err
	}

	player.SecretCode = code
	player.IsReady = true

	if session.IsFull() && session.AllReady() {
		session.Status = model.SessionStatusInProgress
		session.CurrentTurn = session.Players[0].ID
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	r.logger.Info("number locked",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("status", string(session.Status)),
	)

	return session, nil
}

// MakeGuess evaluates a guess from the player holding the turn against the
// opponent's secret. Checks run in a fixed order (turn ownership, code
// format, opponent secret, evaluation) so a rejected guess never mutates
// session state or appears in the guess log.
func (r *Registry) MakeGuess(ctx context.Context, id model.SessionID, playerID model.PlayerID, code string) (*model.Guess, *model.GameSession, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	session, err := r.storage.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	player := session.GetPlayer(playerID)
	if player == nil {
		return nil, nil, model.ErrNotInSession
	}

	switch session.Status {
	case model.SessionStatusCompleted:
		return nil, nil, model.ErrGameCompleted
	case model.SessionStatusInProgress:
	default:
		return nil, nil, model.ErrGameNotStarted
	}

	if session.CurrentTurn != playerID {
		return nil, nil, model.ErrNotYourTurn
	}

	if err := guess.ValidateCode(code); err != nil {
		return nil, nil, err
	}

	opponent := session.Opponent(playerID)
	if opponent == nil || opponent.SecretCode == "" {
		// Unreachable under the turn invariant; tolerated as a no-op
		return nil, nil, model.ErrNoOpponentSecret
	}

	digits, positions := guess.Evaluate(code, opponent.SecretCode)

	g := model.Guess{
		PlayerID:         playerID,
		PlayerName:       player.DisplayName,
		Guess:            code,
		CorrectDigits:    digits,
		CorrectPositions: positions,
		Timestamp:        r.clock.Now(),
	}
	session.Guesses = append(session.Guesses, g)

	if g.IsWinning() {
		session.Status = model.SessionStatusCompleted
		session.Winner = playerID
	} else {
		session.CurrentTurn = opponent.ID
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	r.logger.Info("guess made",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("correct_digits", digits),
		slog.Int("correct_positions", positions),
		slog.Bool("winning", g.IsWinning()),
	)

	return &g, session, nil
}

// Leave removes a player from a session. The last player leaving destroys
// the session; otherwise the session reverts to waiting, keeping any
// surviving player's locked secret, the guess log, and the current turn so
// a new joiner can resume the game.
//
// The returned session is nil when the session was destroyed.
func (r *Registry) Leave(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	session, err := r.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range session.Players {
		if session.Players[i].ID == playerID {
			session.Players = append(session.Players[:i], session.Players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrNotInSession
	}

	if len(session.Players) == 0 {
		if err := r.storage.DeleteSession(ctx, id); err != nil {
			return nil, err
		}
		r.locks.release(id)
		r.logger.Info("session destroyed", slog.String("session_id", string(id)))
		return nil, nil
	}

	if !session.IsFull() {
		session.Status = model.SessionStatusWaiting
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	r.logger.Info("player left",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(session.Players)),
	)

	return session, nil
}
