// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Mode: difficulty mode (basic words / intermediate phrases).
//   - Status: lifecycle state of a session (in_progress/won/lost/timed_out).
//   - Session: state for a single in-progress or finished playthrough.

package game

import "time"

const (
	// MaxLives is the incorrect-guess budget for a fresh session.
	MaxLives = 6

	// GuessTimeout is the per-guess countdown. A guess whose elapsed time
	// exceeds it ends the session.
	GuessTimeout = 15 * time.Second
)

// Mode selects which dictionary a session draws its secret from.
// Possible values:
//   - "basic":        single words.
//   - "intermediate": phrases; spaces and punctuation are revealed for free.
type Mode string

const (
	ModeBasic        Mode = "basic"
	ModeIntermediate Mode = "intermediate"
)

// Status represents the lifecycle state of a session.
// "won", "lost" and "timed_out" are terminal: once reached, the session
// never transitions again and rejects further guesses.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusTimedOut   Status = "timed_out"
)

// Terminal reports whether the status admits no further transitions.
func (st Status) Terminal() bool { return st != StatusInProgress }

// Session holds the state of a single hangman playthrough.
type Session struct {
	ID       string // Unique session identifier (random hex string).
	Mode     Mode   // Difficulty mode the secret was drawn for.
	Secret   string // The word or phrase to guess (always lowercase).
	Lives    int    // Remaining incorrect-guess budget (0..MaxLives).
	Status   Status // Current lifecycle state.
	HintUsed bool   // True once the single free hint has been spent.

	secret      []rune            // Secret as runes, aligned with revealed.
	revealed    []bool            // Per-position visibility mask.
	guessed     map[rune]struct{} // Letters submitted so far.
	turnStarted time.Time         // Start of the current guess countdown.
}
