// internal/game/errors.go
//
// Error taxonomy for guess handling. All of these are recoverable at the
// caller boundary: the CLI re-prompts and the HTTP layer maps them to 4xx
// responses without touching session state.

package game

import "errors"

var (
	// ErrGameOver is returned when a guess or hint arrives after the
	// session reached a terminal status.
	ErrGameOver = errors.New("game is already over")

	// ErrAlreadyGuessed is returned when a letter was submitted before,
	// whether or not it was correct.
	ErrAlreadyGuessed = errors.New("letter already guessed")

	// ErrInvalidGuess is returned when the input is not a single
	// alphabetic character.
	ErrInvalidGuess = errors.New("guess must be a single letter")

	// ErrHintUsed is returned when the session's one hint is spent.
	ErrHintUsed = errors.New("hint already used")

	// ErrNoHintLeft is returned when every letter of the secret has
	// already been guessed.
	ErrNoHintLeft = errors.New("no unguessed letters left")

	// ErrNoLetters rejects secrets with nothing to guess.
	ErrNoLetters = errors.New("secret contains no letters")

	// ErrUnknownMode rejects difficulty values other than basic/intermediate.
	ErrUnknownMode = errors.New("unknown mode")
)
