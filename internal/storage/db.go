// internal/storage/db.go
//
// SQLite persistence for finished games, user accounts, and daily results.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Idempotent schema creation.
//   - Game-row lifecycle: insert on create, per-guess counters, finish status.
//   - Leaderboard query over user win counts.
//
// Active sessions never live here; only outcomes do.

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (and creates if missing) the SQLite database file.
// It ensures the parent directory exists for relative paths such as
// ./data/hangman.db, configures busy timeout and WAL journaling, and
// enforces foreign keys.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// InitSchema creates every table the server needs. All statements are
// idempotent, so calling it on every boot is safe.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			games_played  INTEGER NOT NULL DEFAULT 0,
			wins          INTEGER NOT NULL DEFAULT 0,
			streak        INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id            TEXT PRIMARY KEY,
			user_id       TEXT,
			anonymous_id  TEXT,
			mode          TEXT NOT NULL,
			status        TEXT NOT NULL,
			guesses       INTEGER NOT NULL DEFAULT 0,
			wrong_guesses INTEGER NOT NULL DEFAULT 0,
			lives_left    INTEGER NOT NULL DEFAULT 6,
			started_at    TEXT NOT NULL,
			finished_at   TEXT,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_user ON games(user_id, started_at);`,
		`CREATE TABLE IF NOT EXISTS daily_results (
			user_id       TEXT NOT NULL,
			date          TEXT NOT NULL,
			secret_index  INTEGER NOT NULL,
			won           INTEGER NOT NULL DEFAULT 0,
			wrong_guesses INTEGER NOT NULL,
			lives_left    INTEGER NOT NULL,
			elapsed_ms    INTEGER NOT NULL,
			created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, date)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// GameRow mirrors one row of the games table.
type GameRow struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	Guesses    int    `json:"guesses"`
	Wrong      int    `json:"wrongGuesses"`
	LivesLeft  int    `json:"livesLeft"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// InsertGame records a freshly created session and its owner: a user ID
// when authenticated, otherwise the anonymous cookie ID.
func InsertGame(ctx context.Context, db *sql.DB, id, userID, anonID, mode string, startedAt time.Time) error {
	var user, anon any
	if userID != "" {
		user = userID
	}
	if userID == "" && anonID != "" {
		anon = anonID
	}
	_, err := db.ExecContext(ctx, `INSERT INTO games (id, user_id, anonymous_id, mode, status, started_at)
	                               VALUES (?,?,?,?,?,?)`,
		id, user, anon, mode, "in_progress", startedAt.UTC().Format(time.RFC3339))
	return err
}

// RecordGuess bumps the guess counters for a game within tx.
func RecordGuess(ctx context.Context, tx *sql.Tx, gameID string, wrong bool) error {
	wrongInc := 0
	if wrong {
		wrongInc = 1
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE games SET guesses = guesses + 1, wrong_guesses = wrong_guesses + ? WHERE id=?`,
		wrongInc, gameID)
	return err
}

// FinishGame stamps the terminal status on a game row within tx.
func FinishGame(ctx context.Context, tx *sql.Tx, gameID, status string, livesLeft int, finishedAt time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, lives_left=?, finished_at=? WHERE id=?`,
		status, livesLeft, finishedAt.UTC().Format(time.RFC3339), gameID)
	return err
}

// RecentGames lists a user's latest games, newest first.
func RecentGames(ctx context.Context, db *sql.DB, userID string, limit int) ([]GameRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, mode, status, guesses, wrong_guesses, lives_left, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.Mode, &g.Status, &g.Guesses, &g.Wrong, &g.LivesLeft, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// LeaderboardRow is one entry of the public wins leaderboard.
type LeaderboardRow struct {
	Username    string `json:"username"`
	Wins        int    `json:"wins"`
	GamesPlayed int    `json:"gamesPlayed"`
	Streak      int    `json:"streak"`
}

// TopWinners returns users ranked by wins, then fewest games played.
func TopWinners(ctx context.Context, db *sql.DB, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT username, wins, games_played, streak
		 FROM users WHERE games_played > 0
		 ORDER BY wins DESC, games_played ASC, username ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.Wins, &r.GamesPlayed, &r.Streak); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
