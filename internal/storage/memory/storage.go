package memory

import (
	"context"
	"sync"

	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Sessions are cloned on the way in and out so callers never share the
// stored instance; combined with the registry's per-session serialization
// this gives readers a consistent snapshot.
type Storage struct {
	mu sync.RWMutex

	sessions map[model.SessionID]*model.GameSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.GameSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.GameSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session.Clone())
	}
	return result, nil
}
