// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Load the word list (basic mode) and phrase list (intermediate mode)
//     from configured files or fall back to embedded defaults.
//   - Supply RandomWord/RandomPhrase for secret selection, plus Stats.
//
// Lists:
//   - "words":   single lowercase a–z words, one per line.
//   - "phrases": lowercase lines that may carry spaces/punctuation; they
//     must contain at least one letter to be guessable.
//
// Load may be called again with the same paths to swap the lists in place;
// the file watcher uses that for hot reload. Access is guarded by a RWMutex
// so readers never observe a half-swapped list.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"
)

// --- embedded tiny defaults (the game runs even with nothing configured) ---

//go:embed default_words.txt
var embeddedWords string

//go:embed default_phrases.txt
var embeddedPhrases string

var (
	mu         sync.RWMutex
	wordList   []string // basic-mode secrets
	phraseList []string // intermediate-mode secrets
)

// Load reads both lists. An empty path selects the embedded defaults for
// that list. Returns an error if either list ends up empty, leaving the
// previously loaded lists untouched.
func Load(wordsPath, phrasesPath string) error {
	ws, err := loadList(wordsPath, embeddedWords, validWord)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	ps, err := loadList(phrasesPath, embeddedPhrases, validPhrase)
	if err != nil {
		return fmt.Errorf("load phrases: %w", err)
	}
	if len(ws) == 0 {
		return errors.New("words: word list is empty")
	}
	if len(ps) == 0 {
		return errors.New("words: phrase list is empty")
	}

	mu.Lock()
	wordList, phraseList = ws, ps
	mu.Unlock()
	return nil
}

// loadList reads path if set, otherwise parses the embedded fallback.
func loadList(path, embedded string, valid func(string) bool) ([]string, error) {
	if path == "" {
		return normalizeLines(embedded, valid), nil
	}
	return readListFile(path, valid)
}

// readListFile loads one entry per line from a file, lowercases, trims,
// and keeps only lines the validator accepts.
func readListFile(path string, valid func(string) bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := cleanLine(sc.Text(), valid); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into valid entries.
func normalizeLines(s string, valid func(string) bool) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := cleanLine(line, valid); ok {
			out = append(out, w)
		}
	}
	return out
}

// cleanLine trims and lowercases a raw line, dropping blanks and comments.
func cleanLine(line string, valid func(string) bool) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	if !valid(w) {
		return "", false
	}
	return w, true
}

// validWord accepts lowercase a–z words only.
func validWord(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// validPhrase accepts any line holding at least one a–z letter.
func validPhrase(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

// RandomWord returns a cryptographically random basic-mode secret.
// If no list is loaded, falls back to "python".
func RandomWord() string {
	mu.RLock()
	defer mu.RUnlock()
	if len(wordList) == 0 {
		return "python"
	}
	return wordList[randomIndex(len(wordList))]
}

// RandomPhrase returns a cryptographically random intermediate-mode secret.
// If no list is loaded, falls back to "hello world".
func RandomPhrase() string {
	mu.RLock()
	defer mu.RUnlock()
	if len(phraseList) == 0 {
		return "hello world"
	}
	return phraseList[randomIndex(len(phraseList))]
}

// Words returns the loaded basic-mode list (used by the daily challenge
// for deterministic secret-by-index selection).
func Words() []string {
	mu.RLock()
	defer mu.RUnlock()
	return wordList
}

// Stats returns counts of loaded entries: (words, phrases).
func Stats() (wordCount int, phraseCount int) {
	mu.RLock()
	defer mu.RUnlock()
	return len(wordList), len(phraseList)
}

func randomIndex(n int) int {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}
