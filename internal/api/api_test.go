package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitduel/digitduel/internal/api"
	"github.com/digitduel/digitduel/internal/factory"
	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/services/session"
	"github.com/digitduel/digitduel/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler  http.Handler
	registry *session.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:     testutil.NopLogger(),
		Registry:   app.Registry,
		HubManager: app.HubManager,
	})

	return &testServer{
		handler:  router,
		registry: app.Registry,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	id, ok := resp["session_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, session.SessionIDLength)
	assert.Equal(t, "waiting", resp["status"])
	assert.Equal(t, float64(model.MaxPlayers), resp["max_players"])
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)

	sess, err := ts.registry.Create(context.Background())
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+string(sess.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, string(sess.ID), resp["session_id"])
}

func TestGetSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "SESSION_NOT_FOUND")
}

func TestListSessions(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rr.Body.String())

	_, err := ts.registry.Create(context.Background())
	require.NoError(t, err)
	_, err = ts.registry.Create(context.Background())
	require.NoError(t, err)

	rr = ts.request(http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Sessions []map[string]any `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Sessions, 2)
}

func TestSessionResponseOmitsSecrets(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	sess, err := ts.registry.Create(ctx)
	require.NoError(t, err)
	alice, _, err := ts.registry.Join(ctx, sess.ID, "Alice")
	require.NoError(t, err)
	bob, _, err := ts.registry.Join(ctx, sess.ID, "Bob")
	require.NoError(t, err)
	_, err = ts.registry.LockNumber(ctx, sess.ID, alice.ID, "1234")
	require.NoError(t, err)
	_, err = ts.registry.LockNumber(ctx, sess.ID, bob.ID, "5678")
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+string(sess.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Players []map[string]any `json:"players"`
		Status  string           `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Players, 2)
	assert.Equal(t, "in_progress", resp.Status)

	// Readiness is visible, the secret code is not on the wire at all
	for _, player := range resp.Players {
		assert.Equal(t, true, player["is_ready"])
		for key := range player {
			assert.Contains(t, []string{"id", "name", "joined_at", "is_ready"}, key)
		}
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
