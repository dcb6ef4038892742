package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/digitduel/digitduel/internal/api/handler"
	"github.com/digitduel/digitduel/internal/middleware"
	"github.com/digitduel/digitduel/internal/services/session"
	"github.com/digitduel/digitduel/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *session.Registry
	HubManager *ws.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.Registry)
	wsHandler := ws.NewHandler(cfg.Registry, cfg.HubManager, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods(http.MethodGet)

	// Game connection (upgrades to websocket)
	api.HandleFunc("/sessions/{sessionId}/ws", wsHandler.Serve).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
