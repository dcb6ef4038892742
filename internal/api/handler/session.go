package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/digitduel/digitduel/internal/api/apierr"
	"github.com/digitduel/digitduel/internal/api/response"
	"github.com/digitduel/digitduel/internal/model"
	"github.com/digitduel/digitduel/internal/services/session"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	registry *session.Registry
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *session.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.registry.Create(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.registry.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromModels(sessions))
}

// Get handles GET /api/v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["sessionId"])

	sess, err := h.registry.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}
