package storage

import (
	"context"

	"github.com/digitduel/digitduel/internal/model"
)

// Storage defines the interface for session persistence. The default
// backend is in-memory; a Redis backend exists so a future multi-instance
// deployment can share session state without touching the state machine.
type Storage interface {
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
	ListSessions(ctx context.Context) ([]*model.GameSession, error)
}
