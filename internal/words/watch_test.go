package words

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRequiresAPath(t *testing.T) {
	_, err := Watch("", "")
	assert.Error(t, err)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	restoreDefaults(t)

	path := writeList(t, "words.txt", "alpha\n")
	require.NoError(t, Load(path, ""))
	wc, _ := Stats()
	require.Equal(t, 1, wc)

	stop, err := Watch(path, "")
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("alpha\nbravo\ncharlie\n"), 0o644))

	assert.Eventually(t, func() bool {
		wc, _ := Stats()
		return wc == 3
	}, 3*time.Second, 25*time.Millisecond, "watcher should reload the word list")
}

func TestWatchKeepsListsWhenReloadFails(t *testing.T) {
	restoreDefaults(t)

	path := writeList(t, "words.txt", "alpha\nbravo\n")
	require.NoError(t, Load(path, ""))

	stop, err := Watch(path, "")
	require.NoError(t, err)
	defer stop()

	// Truncate to an invalid (empty) list: reload must fail and keep state.
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))

	// Give the watcher a moment to observe the write.
	time.Sleep(300 * time.Millisecond)
	wc, _ := Stats()
	assert.Equal(t, 2, wc)
}
