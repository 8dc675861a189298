package daily

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangman/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.InitSchema(db))
	return NewStore(db)
}

func TestAlreadyPlayed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	played, err := st.AlreadyPlayed(ctx, "u1", "2024-03-07")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{
		UserID: "u1", Date: "2024-03-07", SecretIndex: 3,
		Won: false, Wrong: 6, LivesLeft: 0, ElapsedMs: 42_000,
	}))

	played, err = st.AlreadyPlayed(ctx, "u1", "2024-03-07")
	require.NoError(t, err)
	assert.True(t, played)

	// A loss locks the day but never ranks.
	rows, err := st.Leaderboard(ctx, "2024-03-07", 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsertResultIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	win := Result{UserID: "u1", Date: "2024-03-07", Won: true, Wrong: 1, LivesLeft: 5, ElapsedMs: 9_000}
	require.NoError(t, st.InsertResult(ctx, win))

	// Second submit for the same user+date is dropped, not an error.
	win.Wrong = 0
	require.NoError(t, st.InsertResult(ctx, win))

	rows, err := st.Leaderboard(ctx, "2024-03-07", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Wrong)
}

func TestLeaderboardOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	results := []Result{
		{UserID: "slow-clean", Date: "2024-03-07", Won: true, Wrong: 0, LivesLeft: 6, ElapsedMs: 60_000},
		{UserID: "fast-clean", Date: "2024-03-07", Won: true, Wrong: 0, LivesLeft: 6, ElapsedMs: 12_000},
		{UserID: "sloppy", Date: "2024-03-07", Won: true, Wrong: 4, LivesLeft: 2, ElapsedMs: 8_000},
		{UserID: "loser", Date: "2024-03-07", Won: false, Wrong: 6, LivesLeft: 0, ElapsedMs: 5_000},
		{UserID: "yesterday", Date: "2024-03-06", Won: true, Wrong: 0, LivesLeft: 6, ElapsedMs: 1_000},
	}
	for _, r := range results {
		require.NoError(t, st.InsertResult(ctx, r))
	}

	rows, err := st.Leaderboard(ctx, "2024-03-07", 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "fast-clean", rows[0].UserID) // fewest wrong, then fastest
	assert.Equal(t, "slow-clean", rows[1].UserID)
	assert.Equal(t, "sloppy", rows[2].UserID)
}
