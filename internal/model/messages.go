package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ClientMessageType identifies an inbound client message
type ClientMessageType string

const (
	MessageLockNumber ClientMessageType = "lock_number"
	MessageMakeGuess  ClientMessageType = "make_guess"
	MessageChat       ClientMessageType = "chat"
)

// ErrUnknownMessageType is returned when an inbound message carries a type
// discriminator the protocol does not recognize
var ErrUnknownMessageType = errors.New("unknown message type")

// ClientMessage is the closed set of inbound messages. It is decoded once
// at the transport boundary; which field is meaningful depends on Type.
type ClientMessage struct {
	Type ClientMessageType `json:"type"`

	// Number is the secret code for lock_number messages
	Number string `json:"number,omitempty"`
	// Guess is the guessed code for make_guess messages
	Guess string `json:"guess,omitempty"`
	// Message is the chat text for chat messages
	Message string `json:"message,omitempty"`
}

// ParseClientMessage decodes raw bytes into a ClientMessage, rejecting
// unrecognized type discriminators
func ParseClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("malformed message: %w", err)
	}

	switch msg.Type {
	case MessageLockNumber, MessageMakeGuess, MessageChat:
		return msg, nil
	default:
		return ClientMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
}
