package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefaults puts the embedded lists back after a test that swaps them.
func restoreDefaults(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, Load("", ""))
	})
}

func writeList(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	restoreDefaults(t)
	require.NoError(t, Load("", ""))

	wc, pc := Stats()
	assert.Greater(t, wc, 0)
	assert.Greater(t, pc, 0)
	assert.Contains(t, Words(), "python")
}

func TestLoadCustomFiles(t *testing.T) {
	restoreDefaults(t)

	wordsPath := writeList(t, "words.txt", `# fruit words
Apple
BANANA

bad word!
cherry2
  grape
`)
	phrasesPath := writeList(t, "phrases.txt", `Hello There
# skip me
mixed CASE phrase
12345
`)

	require.NoError(t, Load(wordsPath, phrasesPath))

	wc, pc := Stats()
	assert.Equal(t, 3, wc) // apple, banana, grape
	assert.Equal(t, 2, pc) // hello there, mixed case phrase
	assert.ElementsMatch(t, []string{"apple", "banana", "grape"}, Words())
	assert.Contains(t, []string{"apple", "banana", "grape"}, RandomWord())
	assert.Contains(t, []string{"hello there", "mixed case phrase"}, RandomPhrase())
}

func TestLoadMissingFileKeepsPreviousLists(t *testing.T) {
	restoreDefaults(t)
	require.NoError(t, Load("", ""))
	wc, pc := Stats()

	err := Load(filepath.Join(t.TempDir(), "absent.txt"), "")
	require.Error(t, err)

	wcAfter, pcAfter := Stats()
	assert.Equal(t, wc, wcAfter)
	assert.Equal(t, pc, pcAfter)
}

func TestLoadRejectsEmptyList(t *testing.T) {
	restoreDefaults(t)

	empty := writeList(t, "empty.txt", "# only comments\n\n")
	err := Load(empty, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestWordValidation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"apple", true},
		{"z", true},
		{"two words", false},
		{"digit7", false},
		{"punct!", false},
		{"", true}, // blank lines are dropped before validation
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, validWord(tc.in), "input %q", tc.in)
	}
}

func TestPhraseValidation(t *testing.T) {
	assert.True(t, validPhrase("hello world"))
	assert.True(t, validPhrase("it's a test"))
	assert.False(t, validPhrase("12345"))
	assert.False(t, validPhrase("!!!"))
}

func TestRandomWordIsFromLoadedList(t *testing.T) {
	restoreDefaults(t)
	require.NoError(t, Load("", ""))

	list := Words()
	for i := 0; i < 20; i++ {
		assert.Contains(t, list, RandomWord())
	}
}
