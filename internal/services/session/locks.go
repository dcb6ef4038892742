package session

import (
	"sync"

	"github.com/digitduel/digitduel/internal/model"
)

// sessionLocks serializes mutating operations per session id. Two
// connections acting on the same session take the same mutex, so
// concurrent guesses cannot both observe the same current_turn.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[model.SessionID]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[model.SessionID]*sync.Mutex),
	}
}

// acquire locks the mutex for the given session id, creating it on first
// use, and returns the unlock function.
func (l *sessionLocks) acquire(id model.SessionID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// release drops the mutex for a destroyed session. Callers must hold the
// session's mutex when the session is deleted; ids are never reused, so a
// late acquirer simply finds the session gone.
func (l *sessionLocks) release(id model.SessionID) {
	l.mu.Lock()
	delete(l.locks, id)
	l.mu.Unlock()
}
