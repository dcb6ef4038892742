package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKey(session.ID)
	indexKey := sessionIndexKey()

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	key := sessionKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, sessionIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	indexKey := sessionIndexKey()

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.GameSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for i, val := range values {
		if val == nil {
			// Session expired; drop the stale index entry
			s.client.SRem(ctx, indexKey, keys[i])
			continue
		}
		var session model.GameSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}
