package model

import "time"

// Guess is an immutable record of one evaluated guess. It exposes the
// overlap counts but never the secret it was scored against.
type Guess struct {
	PlayerID   PlayerID
	PlayerName string
	Guess      string

	// CorrectDigits counts digit values present in both guess and secret,
	// ignoring position.
	CorrectDigits int
	// CorrectPositions counts indices where guess and secret agree.
	// 4 means a winning guess.
	CorrectPositions int

	Timestamp time.Time
}

// IsWinning reports whether this guess matched the full secret
func (g Guess) IsWinning() bool {
	return g.CorrectPositions == CodeLength
}

// CodeLength is the required length of secret codes and guesses
const CodeLength = 4
