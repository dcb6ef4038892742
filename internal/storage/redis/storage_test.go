package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/digitduel/digitduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newSession(id string) *model.GameSession {
	return &model.GameSession{
		ID:        model.SessionID(id),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Players: []model.Player{
			{ID: "p1", DisplayName: "Alice", SecretCode: "1234", IsReady: true},
			{ID: "p2", DisplayName: "Bob"},
		},
		Status:  model.SessionStatusReady,
		Guesses: []model.Guess{},
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("abc12345")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Status, retrieved.Status)
	s.Equal(session.Players, retrieved.Players)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))

	err := s.storage.DeleteSession(s.ctx, "abc12345")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "abc12345")
	s.ErrorIs(err, model.ErrSessionNotFound)

	// Index entry is cleaned up too
	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))

	exists, err = s.storage.SessionExists(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListSessions() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))
	_ = s.storage.SaveSession(s.ctx, s.newSession("def67890"))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 2)
}

func (s *StorageSuite) TestListSkipsExpiredSessions() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))
	_ = s.storage.SaveSession(s.ctx, s.newSession("def67890"))

	// Expire one entry; its index membership goes stale
	s.mini.FastForward(2 * time.Hour)
	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 1)
	s.Equal(model.SessionID("abc12345"), sessions[0].ID)
}

func (s *StorageSuite) TestSessionsExpire() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("abc12345"))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "abc12345")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveOverwrites() {
	session := s.newSession("abc12345")
	_ = s.storage.SaveSession(s.ctx, session)

	session.Status = model.SessionStatusInProgress
	session.CurrentTurn = "p1"
	_ = s.storage.SaveSession(s.ctx, session)

	retrieved, err := s.storage.GetSession(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusInProgress, retrieved.Status)
	s.Equal(model.PlayerID("p1"), retrieved.CurrentTurn)
}
