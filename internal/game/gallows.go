// internal/game/gallows.go
//
// ASCII gallows rendering and terminal status lines. The figure gains a
// part per life lost: head, torso, two arms, then two legs.

package game

import (
	"fmt"
	"strings"
)

// Gallows draws the gallows for the current number of lost lives, the
// remaining-lives count, and the sorted wrong guesses so far.
func (s *Session) Gallows() string {
	lost := MaxLives - s.Lives

	head := "  |   "
	if lost >= 1 {
		head = "  |  O"
	}

	parts := []string{
		"  ____",
		"  |  |",
		head,
		bodyPart(lost),
		legsPart(lost),
		"__|__",
	}

	drawing := strings.Join(parts, "\n")
	drawing += fmt.Sprintf("\n\nLives remaining: %d", s.Lives)

	if wrong := s.WrongGuesses(); len(wrong) > 0 {
		drawing += fmt.Sprintf("\nWrong guesses: %s", strings.Join(wrong, ", "))
	}
	return drawing
}

func bodyPart(lost int) string {
	switch {
	case lost >= 3:
		return `  | /|\`
	case lost >= 2:
		return "  | /|"
	case lost >= 1:
		return "  |  |"
	}
	return "  |   "
}

func legsPart(lost int) string {
	switch {
	case lost >= 5:
		return `  | / \`
	case lost >= 4:
		return "  | /"
	case lost >= 1:
		return "  |"
	}
	return "  |   "
}

// StatusLine is the one-line outcome message the terminal game prints
// under the board.
func (s *Session) StatusLine() string {
	switch s.Status {
	case StatusWon:
		return fmt.Sprintf("Congratulations! You guessed it: %q", s.Secret)
	case StatusTimedOut:
		return fmt.Sprintf("Time's up! The answer was: %q", s.Secret)
	case StatusLost:
		return fmt.Sprintf("Game over! The answer was: %q", s.Secret)
	}
	return fmt.Sprintf("%d of %d lives remaining", s.Lives, MaxLives)
}
