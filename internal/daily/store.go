package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily attempt. Losses are recorded too, so a
// player cannot retry after a restart wipes the in-memory session.
type Result struct {
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	SecretIndex int    `json:"secretIndex"`
	Won         bool   `json:"won"`
	Wrong       int    `json:"wrongGuesses"`
	LivesLeft   int    `json:"livesLeft"`
	ElapsedMs   int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, secret_index, won, wrong_guesses, lives_left, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.SecretIndex, won, r.Wrong, r.LivesLeft, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry: winners only, fewest wrong guesses first.
type LBRow struct {
	UserID    string `json:"userId"`
	Wrong     int    `json:"wrongGuesses"`
	LivesLeft int    `json:"livesLeft"`
	ElapsedMs int    `json:"elapsedMs"`
}

func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, wrong_guesses, lives_left, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY wrong_guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Wrong, &r.LivesLeft, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
