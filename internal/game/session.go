// internal/game/session.go
//
// Core game engine for a single hangman session.
// Responsibilities:
//   - Create new sessions with a fixed life budget (6) and per-guess countdown (15s).
//   - Validate and apply guesses (single letter, no repeats, timeout check first).
//   - Reveal matching positions or burn a life; detect win/loss/timeout.
//   - Format the masked secret for display.
//
// Notes:
//   - Secrets come from the words package unless the caller pins one.
//   - Non-letter positions (spaces, punctuation in phrases) are revealed
//     at construction and never cost a guess.
//   - The countdown is advisory: callers measure elapsed time per turn and
//     pass it in, so the engine stays clock-free and deterministic.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"hangman/internal/words"
)

// ParseMode maps a user-supplied difficulty string to a Mode.
// An empty string defaults to basic.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeBasic):
		return ModeBasic, nil
	case string(ModeIntermediate):
		return ModeIntermediate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// New constructs a session for the given mode.
// If withSecret is empty, a random entry is drawn from the words package.
func New(mode Mode, withSecret string) (*Session, error) {
	s := &Session{
		ID:   randomID(),
		Mode: mode,
	}
	if err := s.Reset(withSecret); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rearms the session for another round: full lives, no guesses,
// status back to in_progress, and a fresh secret. An empty secret draws
// a new one for the session's mode.
func (s *Session) Reset(secret string) error {
	if secret == "" {
		secret = draw(s.Mode)
	}
	secret = strings.ToLower(strings.TrimSpace(secret))

	runes := []rune(secret)
	revealed := make([]bool, len(runes))
	letters := 0
	for i, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		} else {
			revealed[i] = true
		}
	}
	if letters == 0 {
		return fmt.Errorf("%w: %q", ErrNoLetters, secret)
	}

	s.Secret = secret
	s.Lives = MaxLives
	s.Status = StatusInProgress
	s.HintUsed = false
	s.secret = runes
	s.revealed = revealed
	s.guessed = make(map[rune]struct{})
	s.turnStarted = time.Time{}
	return nil
}

// draw picks a random secret for the mode.
func draw(mode Mode) string {
	if mode == ModeIntermediate {
		return words.RandomPhrase()
	}
	return words.RandomWord()
}

// SubmitGuess validates and applies one guess, mutating the session.
// elapsed is the time the player took for this guess, measured by the caller.
// Returns the resulting status.
//
// Validation order:
//   - Session must be in progress, else ErrGameOver.
//   - elapsed over the countdown ends the session as timed_out immediately;
//     no life is consumed and the input is not inspected.
//   - A repeated letter fails with ErrAlreadyGuessed and changes nothing.
//   - Anything but a single alphabetic character fails with ErrInvalidGuess.
//
// State transitions:
//   - Letter in secret → all matching positions revealed; all revealed → won.
//   - Letter not in secret → one life burned; zero lives → lost.
func (s *Session) SubmitGuess(input string, elapsed time.Duration) (Status, error) {
	if s.Status.Terminal() {
		return s.Status, ErrGameOver
	}
	if elapsed > GuessTimeout {
		s.Status = StatusTimedOut
		return s.Status, nil
	}

	runes := []rune(strings.ToLower(input))
	if len(runes) == 1 {
		if _, dup := s.guessed[runes[0]]; dup {
			return s.Status, fmt.Errorf("%q: %w", string(runes[0]), ErrAlreadyGuessed)
		}
	}
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return s.Status, ErrInvalidGuess
	}

	letter := runes[0]
	s.guessed[letter] = struct{}{}

	if s.reveal(letter) == 0 {
		s.Lives--
	}
	s.refreshStatus()
	return s.Status, nil
}

// reveal marks every position holding letter and returns how many matched.
func (s *Session) reveal(letter rune) int {
	n := 0
	for i, r := range s.secret {
		if r == letter {
			s.revealed[i] = true
			n++
		}
	}
	return n
}

// refreshStatus recomputes terminal conditions, win before loss.
func (s *Session) refreshStatus() {
	if s.allRevealed() {
		s.Status = StatusWon
		return
	}
	if s.Lives <= 0 {
		s.Status = StatusLost
	}
}

// allRevealed reports whether every position is visible.
func (s *Session) allRevealed() bool {
	for _, v := range s.revealed {
		if !v {
			return false
		}
	}
	return true
}

// Hint spends the session's single hint: it picks a random letter of the
// secret that has not been guessed yet and applies it as a free correct
// guess. Revealing the last letters this way wins the game.
func (s *Session) Hint() (rune, error) {
	if s.Status.Terminal() {
		return 0, ErrGameOver
	}
	if s.HintUsed {
		return 0, ErrHintUsed
	}

	seen := make(map[rune]struct{})
	var candidates []rune
	for _, r := range s.secret {
		if !unicode.IsLetter(r) {
			continue
		}
		if _, done := s.guessed[r]; done {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		candidates = append(candidates, r)
	}
	if len(candidates) == 0 {
		return 0, ErrNoHintLeft
	}

	letter := candidates[mrand.Intn(len(candidates))]
	s.HintUsed = true
	s.guessed[letter] = struct{}{}
	s.reveal(letter)
	s.refreshStatus()
	return letter, nil
}

// BeginTurn records the start of the current guess countdown.
// Callers compute the elapsed time for SubmitGuess from it.
func (s *Session) BeginTurn(t time.Time) { s.turnStarted = t }

// TurnStarted returns the start of the current guess countdown.
// The zero time means no turn has begun.
func (s *Session) TurnStarted() time.Time { return s.turnStarted }

// Masked renders the secret with unguessed letters as underscores.
// Positions are space-joined the way the terminal game prints them, so
// "hello world" with h guessed reads "h _ _ _ _   _ _ _ _ _".
func (s *Session) Masked() string {
	cells := make([]string, len(s.secret))
	for i, r := range s.secret {
		if s.revealed[i] {
			cells[i] = string(r)
		} else {
			cells[i] = "_"
		}
	}
	return strings.Join(cells, " ")
}

// Render produces the player-facing display line: the masked secret plus
// the remaining-lives count. Pure function of current state.
func (s *Session) Render() string {
	return fmt.Sprintf("%s [lives: %d]", s.Masked(), s.Lives)
}

// GuessedLetters returns every submitted letter in sorted order.
func (s *Session) GuessedLetters() []string {
	out := make([]string, 0, len(s.guessed))
	for r := range s.guessed {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// WrongGuesses returns the submitted letters absent from the secret,
// in sorted order.
func (s *Session) WrongGuesses() []string {
	var out []string
	for r := range s.guessed {
		if !strings.ContainsRune(s.Secret, r) {
			out = append(out, string(r))
		}
	}
	sort.Strings(out)
	return out
}

// Revealed returns a copy of the per-position visibility mask.
func (s *Session) Revealed() []bool {
	out := make([]bool, len(s.revealed))
	copy(out, s.revealed)
	return out
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
