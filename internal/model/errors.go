package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrNotInSession    = errors.New("player is not in session")

	// Game errors
	ErrInvalidCode      = errors.New("code must be 4 unique digits")
	ErrNumberLocked     = errors.New("secret number is already locked")
	ErrNotYourTurn      = errors.New("not this player's turn")
	ErrGameNotStarted   = errors.New("game is not in progress")
	ErrGameCompleted    = errors.New("game is already completed")
	ErrNoOpponentSecret = errors.New("opponent has not locked a number")
)
