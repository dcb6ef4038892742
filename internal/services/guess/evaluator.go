// Package guess implements code validation and guess evaluation for the
// number-guessing game. Both operations are pure functions over two
// 4-digit codes.
package guess

import (
	"github.com/digitduel/digitduel/internal/model"
)

// ValidateCode checks that a candidate code is exactly 4 decimal digits
// with no repeats. Codes that fail validation never reach Evaluate.
func ValidateCode(code string) error {
	if len(code) != model.CodeLength {
		return model.ErrInvalidCode
	}
	var seen [10]bool
	for _, c := range []byte(code) {
		if c < '0' || c > '9' {
			return model.ErrInvalidCode
		}
		d := c - '0'
		if seen[d] {
			return model.ErrInvalidCode
		}
		seen[d] = true
	}
	return nil
}

// Evaluate scores a guess against a secret. It returns the number of digit
// values common to both codes regardless of position, and the number of
// indices where the codes agree. Inputs are assumed valid (4 unique
// digits each), so the digit count is not multiplicity-aware.
//
// positions == 4 is a winning guess and implies digits == 4.
func Evaluate(guessCode, secret string) (digits, positions int) {
	var inSecret [10]bool
	for _, c := range []byte(secret) {
		inSecret[c-'0'] = true
	}

	for i := 0; i < model.CodeLength; i++ {
		if guessCode[i] == secret[i] {
			positions++
		}
		if inSecret[guessCode[i]-'0'] {
			digits++
		}
	}
	return digits, positions
}
