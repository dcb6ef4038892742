package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL bounds how long an abandoned session record lives.
	// Live sessions are rewritten on every mutation, refreshing the TTL.
	SessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   24 * time.Hour,
	}
}
