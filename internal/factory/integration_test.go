package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/digitduel/digitduel/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete game from session creation to a win
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockRandom.QueueString("abc12345")

	// Step 1: Create a session
	sess, err := s.app.Registry.Create(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.SessionID("abc12345"), sess.ID)
	s.Equal(model.SessionStatusWaiting, sess.Status)

	// Step 2: Both players join
	alice, _, err := s.app.Registry.Join(s.ctx, sess.ID, "Alice")
	s.Require().NoError(err)
	bob, joined, err := s.app.Registry.Join(s.ctx, sess.ID, "Bob")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusReady, joined.Status)

	// Step 3: Both lock their numbers; the game starts
	_, err = s.app.Registry.LockNumber(s.ctx, sess.ID, alice.ID, "1234")
	s.Require().NoError(err)
	started, err := s.app.Registry.LockNumber(s.ctx, sess.ID, bob.ID, "5678")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusInProgress, started.Status)
	s.Equal(alice.ID, started.CurrentTurn)

	// Step 4: A few rounds of guesses with distinct timestamps
	_, _, err = s.app.Registry.MakeGuess(s.ctx, sess.ID, alice.ID, "5679")
	s.Require().NoError(err)
	s.app.MockClock.Advance(10 * time.Second)
	_, _, err = s.app.Registry.MakeGuess(s.ctx, sess.ID, bob.ID, "1243")
	s.Require().NoError(err)
	s.app.MockClock.Advance(10 * time.Second)

	// Step 5: Alice finds Bob's number
	g, final, err := s.app.Registry.MakeGuess(s.ctx, sess.ID, alice.ID, "5678")
	s.Require().NoError(err)
	s.True(g.IsWinning())
	s.Equal(model.SessionStatusCompleted, final.Status)
	s.Equal(alice.ID, final.Winner)
	s.Len(final.Guesses, 3)

	// Guess timestamps come from the injected clock
	s.True(final.Guesses[0].Timestamp.Before(final.Guesses[2].Timestamp))

	// Step 6: Winner leaves, then the loser; the session is destroyed
	_, err = s.app.Registry.Leave(s.ctx, sess.ID, alice.ID)
	s.Require().NoError(err)
	gone, err := s.app.Registry.Leave(s.ctx, sess.ID, bob.ID)
	s.Require().NoError(err)
	s.Nil(gone)

	_, err = s.app.Registry.Get(s.ctx, sess.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Test: A disconnect mid-game pauses the session for a replacement player
func (s *IntegrationSuite) TestDisconnectAndResume() {
	s.app.MockRandom.QueueString("abc12345")

	sess, err := s.app.Registry.Create(s.ctx)
	s.Require().NoError(err)
	alice, _, err := s.app.Registry.Join(s.ctx, sess.ID, "Alice")
	s.Require().NoError(err)
	bob, _, err := s.app.Registry.Join(s.ctx, sess.ID, "Bob")
	s.Require().NoError(err)
	_, err = s.app.Registry.LockNumber(s.ctx, sess.ID, alice.ID, "1234")
	s.Require().NoError(err)
	_, err = s.app.Registry.LockNumber(s.ctx, sess.ID, bob.ID, "5678")
	s.Require().NoError(err)

	// Bob drops mid-game
	paused, err := s.app.Registry.Leave(s.ctx, sess.ID, bob.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusWaiting, paused.Status)

	// Guessing is rejected while the seat is empty
	_, _, err = s.app.Registry.MakeGuess(s.ctx, sess.ID, alice.ID, "5678")
	s.ErrorIs(err, model.ErrGameNotStarted)

	// Carol takes the empty seat and play resumes
	carol, _, err := s.app.Registry.Join(s.ctx, sess.ID, "Carol")
	s.Require().NoError(err)
	resumed, err := s.app.Registry.LockNumber(s.ctx, sess.ID, carol.ID, "9012")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusInProgress, resumed.Status)

	_, final, err := s.app.Registry.MakeGuess(s.ctx, sess.ID, alice.ID, "9012")
	s.Require().NoError(err)
	s.Equal(alice.ID, final.Winner)
}

func (s *IntegrationSuite) TestFactoryDefaultsToMemoryStorage() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.NotNil(app.Registry)
	s.NotNil(app.HubManager)
}

func (s *IntegrationSuite) TestFactoryRejectsRedisWithoutConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestFactoryRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "etcd"})
	s.Error(err)
}
