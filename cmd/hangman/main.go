// Command hangman is the terminal game: pick a mode, guess letters against
// the gallows, beat the clock. Same engine the server uses.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"hangman/internal/game"
	"hangman/internal/words"
)

func main() {
	mode := flag.String("mode", "", "game mode: basic (words) or intermediate (phrases); prompts when empty")
	wordsFile := flag.String("words", "", "path to a custom word list (one word per line)")
	phrasesFile := flag.String("phrases", "", "path to a custom phrase list (one phrase per line)")
	flag.Parse()

	if err := words.Load(*wordsFile, *phrasesFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to Hangman!")
	fmt.Printf("You have %d lives and %.0f seconds per guess. Type ? for a one-time hint.\n",
		game.MaxLives, game.GuessTimeout.Seconds())

	m, err := pickMode(in, *mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	sess, err := game.New(m, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	for {
		playRound(in, sess)
		if !playAgain(in) {
			break
		}
		if err := sess.Reset(""); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
	fmt.Println("Thanks for playing!")
}

// pickMode resolves the -mode flag, or prompts interactively when unset.
func pickMode(in *bufio.Scanner, flagMode string) (game.Mode, error) {
	if flagMode != "" {
		return game.ParseMode(flagMode)
	}
	for {
		fmt.Println()
		fmt.Println("Choose a mode:")
		fmt.Println("  1) basic         single words")
		fmt.Println("  2) intermediate  short phrases")
		fmt.Print("> ")
		if !in.Scan() {
			return game.ModeBasic, nil
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "", "1", "basic":
			return game.ModeBasic, nil
		case "2", "intermediate":
			return game.ModeIntermediate, nil
		}
		fmt.Println("Please enter 1 or 2.")
	}
}

// playRound runs one game to completion. The per-guess clock starts when the
// prompt is shown; a slow answer is judged by how long it actually took.
func playRound(in *bufio.Scanner, sess *game.Session) {
	for !sess.Status.Terminal() {
		fmt.Println()
		fmt.Println(sess.Gallows())
		fmt.Println()
		fmt.Println("Word: " + sess.Masked())

		fmt.Print("Guess a letter: ")
		sess.BeginTurn(time.Now())
		if !in.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(in.Text())
		elapsed := time.Since(sess.TurnStarted())

		if line == "?" {
			useHint(sess)
			continue
		}

		livesBefore := sess.Lives
		status, err := sess.SubmitGuess(line, elapsed)
		switch {
		case errors.Is(err, game.ErrAlreadyGuessed):
			fmt.Println("You already tried that letter.")
		case errors.Is(err, game.ErrInvalidGuess):
			fmt.Println("Please enter a single letter.")
		case err != nil:
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		case status == game.StatusTimedOut:
			// final message printed below
		case sess.Lives == livesBefore:
			fmt.Println("Good guess!")
		default:
			fmt.Println("Wrong guess!")
		}
	}

	fmt.Println()
	fmt.Println(sess.Gallows())
	fmt.Println()
	fmt.Println(sess.StatusLine())
}

func useHint(sess *game.Session) {
	letter, err := sess.Hint()
	switch {
	case errors.Is(err, game.ErrHintUsed):
		fmt.Println("You already used your hint.")
	case errors.Is(err, game.ErrNoHintLeft):
		fmt.Println("Nothing left to reveal.")
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
	default:
		fmt.Printf("Hint: the answer contains %q.\n", string(letter))
	}
}

func playAgain(in *bufio.Scanner) bool {
	for {
		fmt.Print("Play again? (y/n): ")
		if !in.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please answer y or n.")
	}
}
