package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/digitduel/digitduel/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeSessionFull     = "SESSION_FULL"
	CodeNotInSession    = "NOT_IN_SESSION"
	CodeInvalidCode     = "INVALID_CODE"
	CodeNumberLocked    = "NUMBER_LOCKED"
	CodeNotYourTurn     = "NOT_YOUR_TURN"
	CodeGameNotStarted  = "GAME_NOT_STARTED"
	CodeGameCompleted   = "GAME_COMPLETED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Session is full"}}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusNotFound, APIError{CodeNotInSession, "Player is not in this session"}}
	case errors.Is(err, model.ErrInvalidCode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCode, "Invalid number. Must be 4 unique digits."}}
	case errors.Is(err, model.ErrNumberLocked):
		return &httpError{http.StatusConflict, APIError{CodeNumberLocked, "Secret number is already locked"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "It's not your turn!"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game is not in progress"}}
	case errors.Is(err, model.ErrGameCompleted):
		return &httpError{http.StatusConflict, APIError{CodeGameCompleted, "Game is already completed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// Message returns the client-facing message for an error, for transports
// (the WebSocket error event) that carry no HTTP status
func Message(err error) string {
	return toHTTPError(err).apiError.Message
}
