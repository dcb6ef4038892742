package redis

import (
	"fmt"

	"github.com/digitduel/digitduel/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "digitduel"

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of all session keys,
// used by ListSessions to avoid SCAN
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
