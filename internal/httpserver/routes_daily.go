// internal/httpserver/routes_daily.go
//
// Daily challenge: everyone gets the same secret word for a given UTC date,
// picked deterministically from the word list with a keyed hash. One attempt
// per player per day; both wins and losses are persisted so the attempt
// cannot be retried, and wins feed a per-day leaderboard ranked by fewest
// wrong guesses, then total time.
//
// Live attempts are held in memory keyed by player+date; finished attempts
// live in the daily_results table.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hangman/internal/daily"
	"hangman/internal/game"
	"hangman/internal/words"
)

type dailySession struct {
	sess  *game.Session
	date  string
	index int
	start time.Time
	saved bool // result row already written
}

func (s *Server) mountDaily(r chi.Router) {
	r.With(s.guessRateLimit()).Post("/daily/new", s.handleDailyNew)
	r.With(s.guessRateLimit()).Post("/daily/guess", s.handleDailyGuess)
	r.Get("/daily/today", s.handleDailyToday)
	r.Get("/daily/leaderboard", s.handleDailyLeaderboard)
}

// dailyPlayerID identifies the player for the one-attempt-per-day rule:
// account ID when signed in, anon cookie ID otherwise.
func (s *Server) dailyPlayerID(w http.ResponseWriter, r *http.Request) string {
	if uid := userIDFrom(r.Context()); uid != "" {
		return uid
	}
	return "anon:" + s.ensureAnonID(w, r)
}

func dailyKey(player, date string) string { return player + "|" + date }

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	player := s.dailyPlayerID(w, r)
	now := s.now()
	date := daily.DateKey(now)

	played, err := s.dailyStore.AlreadyPlayed(r.Context(), player, date)
	if err != nil {
		log.Error().Err(err).Msg("daily lookup")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	if played {
		http.Error(w, `{"error":"already_played"}`, http.StatusConflict)
		return
	}

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	key := dailyKey(player, date)
	if ds, ok := s.dailySessions[key]; ok {
		// resume the attempt in progress
		writeJSON(w, http.StatusOK, s.dailyRes(ds))
		return
	}

	list := words.Words()
	if len(list) == 0 {
		http.Error(w, `{"error":"words_unavailable"}`, http.StatusInternalServerError)
		return
	}
	idx := daily.SecretIndex(now, s.cfg.DailySalt, len(list))
	sess, err := game.New(game.ModeBasic, list[idx])
	if err != nil {
		log.Error().Err(err).Msg("daily session")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	sess.BeginTurn(now)

	ds := &dailySession{sess: sess, date: date, index: idx, start: now}
	s.dailySessions[key] = ds
	log.Info().Str("player", player).Str("date", date).Msg("daily started")
	writeJSON(w, http.StatusOK, s.dailyRes(ds))
}

func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Letter string `json:"letter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	player := s.dailyPlayerID(w, r)
	now := s.now()
	date := daily.DateKey(now)

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	ds, ok := s.dailySessions[dailyKey(player, date)]
	if !ok {
		http.Error(w, `{"error":"no_active_daily"}`, http.StatusNotFound)
		return
	}

	var elapsed time.Duration
	if ts := ds.sess.TurnStarted(); !ts.IsZero() {
		elapsed = now.Sub(ts)
	}
	status, err := ds.sess.SubmitGuess(req.Letter, elapsed)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if !status.Terminal() {
		ds.sess.BeginTurn(now)
	}

	if status.Terminal() && !ds.saved {
		res := daily.Result{
			UserID:      player,
			Date:        ds.date,
			SecretIndex: ds.index,
			Won:         status == game.StatusWon,
			Wrong:       len(ds.sess.WrongGuesses()),
			LivesLeft:   ds.sess.Lives,
			ElapsedMs:   int(now.Sub(ds.start).Milliseconds()),
		}
		if err := s.dailyStore.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("player", player).Msg("save daily result")
		} else {
			ds.saved = true
		}
	}

	writeJSON(w, http.StatusOK, s.dailyRes(ds))
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	player := s.dailyPlayerID(w, r)
	date := daily.DateKey(s.now())

	played, err := s.dailyStore.AlreadyPlayed(r.Context(), player, date)
	if err != nil {
		log.Error().Err(err).Msg("daily lookup")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	s.dailyMu.Lock()
	ds, active := s.dailySessions[dailyKey(player, date)]
	s.dailyMu.Unlock()

	out := map[string]any{"date": date, "played": played, "active": active && !ds.sess.Status.Terminal()}
	if active {
		out["state"] = s.dailyRes(ds)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.dailyStore.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "results": rows})
}

type dailyRes struct {
	Date           string   `json:"date"`
	Display        string   `json:"display"`
	Gallows        string   `json:"gallows"`
	Lives          int      `json:"lives"`
	Status         string   `json:"status"`
	Guessed        []string `json:"guessed"`
	Wrong          []string `json:"wrongGuesses"`
	Message        string   `json:"message"`
	Secret         string   `json:"secret,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

func (s *Server) dailyRes(ds *dailySession) dailyRes {
	res := dailyRes{
		Date:           ds.date,
		Display:        ds.sess.Masked(),
		Gallows:        ds.sess.Gallows(),
		Lives:          ds.sess.Lives,
		Status:         string(ds.sess.Status),
		Guessed:        ds.sess.GuessedLetters(),
		Wrong:          ds.sess.WrongGuesses(),
		Message:        ds.sess.StatusLine(),
		TimeoutSeconds: int(game.GuessTimeout.Seconds()),
	}
	if ds.sess.Status.Terminal() {
		res.Secret = ds.sess.Secret
	}
	return res
}
