package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/digitduel/digitduel/internal/dependencies/mocks"
	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/services/session"
	"github.com/digitduel/digitduel/internal/storage/memory"
	"github.com/digitduel/digitduel/internal/testutil"
)

// DispatchSuite drives the handler's message dispatch directly, without a
// live websocket, for branches that are hard to reach through the wire.
type DispatchSuite struct {
	suite.Suite
	storage *memory.Storage
	manager *HubManager
	handler *Handler
	ctx     context.Context
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}

func (s *DispatchSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	registry := session.NewRegistry(s.storage, clk, mocks.NewMockRandom(), testutil.NopLogger())
	s.manager = NewHubManager(testutil.NopLogger())
	s.handler = NewHandler(registry, s.manager, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *DispatchSuite) TearDownTest() {
	s.manager.RemoveHub("abc12345")
}

func (s *DispatchSuite) TestGuessBeforeOpponentLocksIsDropped() {
	// An in-progress session where the turn holder's opponent has no
	// secret yet. Unreachable through normal play, but tolerated.
	sess := &model.GameSession{
		ID:        "abc12345",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Players: []model.Player{
			{ID: "alice", DisplayName: "Alice", SecretCode: "1234", IsReady: true},
			{ID: "bob", DisplayName: "Bob"},
		},
		Status:      model.SessionStatusInProgress,
		CurrentTurn: "alice",
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	hub := s.manager.GetOrCreateHub("abc12345")
	alice := newClient(hub, nil, "abc12345", "alice", "Alice")
	hub.Register(alice)
	s.Require().Eventually(func() bool {
		return hub.ClientCount() == 1
	}, time.Second, time.Millisecond)

	s.handler.dispatch(alice, []byte(`{"type":"make_guess","guess":"5678"}`))

	// The first thing Alice hears afterwards must be this chat: the
	// dropped guess produced neither an error reply nor a broadcast.
	s.handler.dispatch(alice, []byte(`{"type":"chat","message":"ping"}`))

	var evt Event
	select {
	case data := <-alice.send:
		s.Require().NoError(json.Unmarshal(data, &evt))
	case <-time.After(time.Second):
		s.Require().FailNow("no message received")
	}
	s.Equal(model.EventChat, evt.Type)
	s.Equal("ping", evt.Message)

	stored, err := s.storage.GetSession(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.Empty(stored.Guesses)
	s.Equal(model.SessionStatusInProgress, stored.Status)
	s.Equal(model.PlayerID("alice"), stored.CurrentTurn)
}
