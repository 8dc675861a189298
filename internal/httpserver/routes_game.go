// internal/httpserver/routes_game.go
//
// Handlers for the core hangman endpoints:
//   POST   /game/new    create a session (random or caller-supplied secret)
//   POST   /game/guess  submit one letter, metered against the turn clock
//   POST   /game/hint   reveal one letter for free (once per game)
//   GET    /game/{id}   fetch current state
//   DELETE /game/{id}   abandon and forget a session
//
// Persistence is best-effort: gameplay never fails because the stats DB
// hiccuped; failures are logged and the in-memory session stays canonical.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hangman/internal/game"
	"hangman/internal/storage"
	"hangman/internal/store"
)

type newGameReq struct {
	Mode   string `json:"mode"`             // "basic" (words) or "intermediate" (phrases); default basic
	Secret string `json:"secret,omitempty"` // optional challenge word from another player
}

type newGameRes struct {
	GameID         string `json:"gameId"`
	Mode           string `json:"mode"`
	Display        string `json:"display"`
	Lives          int    `json:"lives"`
	Status         string `json:"status"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

type gameStateRes struct {
	GameID         string   `json:"gameId"`
	Mode           string   `json:"mode"`
	Display        string   `json:"display"`
	Gallows        string   `json:"gallows"`
	Lives          int      `json:"lives"`
	Status         string   `json:"status"`
	Guessed        []string `json:"guessed"`
	Wrong          []string `json:"wrongGuesses"`
	HintUsed       bool     `json:"hintUsed"`
	Message        string   `json:"message"`
	Correct        *bool    `json:"correct,omitempty"` // set on guess responses only
	Secret         string   `json:"secret,omitempty"`  // revealed once the game is over
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

func (s *Server) stateRes(sess *game.Session) gameStateRes {
	res := gameStateRes{
		GameID:         sess.ID,
		Mode:           string(sess.Mode),
		Display:        sess.Masked(),
		Gallows:        sess.Gallows(),
		Lives:          sess.Lives,
		Status:         string(sess.Status),
		Guessed:        sess.GuessedLetters(),
		Wrong:          sess.WrongGuesses(),
		HintUsed:       sess.HintUsed,
		Message:        sess.StatusLine(),
		TimeoutSeconds: int(game.GuessTimeout.Seconds()),
	}
	if sess.Status.Terminal() {
		res.Secret = sess.Secret
	}
	return res
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeGameError(w, err)
		return
	}
	sess, err := game.New(mode, req.Secret)
	if err != nil {
		writeGameError(w, err)
		return
	}

	now := s.now()
	sess.BeginTurn(now)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	uid := userIDFrom(r.Context())
	anon := ""
	if uid == "" {
		anon = s.ensureAnonID(w, r)
	}
	if err := storage.InsertGame(r.Context(), s.db, sess.ID, uid, anon, string(mode), now); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("insert game row")
	}

	log.Info().Str("game", sess.ID).Str("mode", string(mode)).Msg("new game")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:         sess.ID,
		Mode:           string(mode),
		Display:        sess.Masked(),
		Lives:          sess.Lives,
		Status:         string(sess.Status),
		TimeoutSeconds: int(game.GuessTimeout.Seconds()),
	})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.GameID == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return
	}

	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	// Meter the guess against the server-side turn clock. A session that
	// has never started a turn is given the full window.
	now := s.now()
	var elapsed time.Duration
	if ts := sess.TurnStarted(); !ts.IsZero() {
		elapsed = now.Sub(ts)
	}

	livesBefore := sess.Lives
	status, err := sess.SubmitGuess(req.Letter, elapsed)
	if err != nil {
		writeGameError(w, err)
		return
	}
	correct := status != game.StatusTimedOut && sess.Lives == livesBefore
	if !status.Terminal() {
		sess.BeginTurn(now)
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("save session")
	}

	// A timed-out turn consumes no guess, so no guess row is written.
	s.persistProgress(r.Context(), sess, userIDFrom(r.Context()),
		status != game.StatusTimedOut, !correct, now)

	res := s.stateRes(sess)
	res.Correct = &correct
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	letter, err := sess.Hint()
	if err != nil {
		writeGameError(w, err)
		return
	}
	// The free reveal can finish the word; the turn clock restarts either way.
	now := s.now()
	if !sess.Status.Terminal() {
		sess.BeginTurn(now)
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("save session")
	}
	if sess.Status.Terminal() {
		s.persistProgress(r.Context(), sess, userIDFrom(r.Context()), false, false, now)
	}

	res := s.stateRes(sess)
	writeJSON(w, http.StatusOK, struct {
		gameStateRes
		Letter string `json:"letter"`
	}{res, string(letter)})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateRes(sess))
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if !sess.Status.Terminal() {
		if tx, err := s.db.BeginTx(r.Context(), nil); err == nil {
			if err := storage.FinishGame(r.Context(), tx, id, "abandoned", sess.Lives, s.now()); err != nil {
				log.Warn().Err(err).Str("game", id).Msg("mark abandoned")
				_ = tx.Rollback()
			} else if err := tx.Commit(); err != nil {
				log.Warn().Err(err).Str("game", id).Msg("mark abandoned")
			}
		}
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// persistProgress best-effort records one guess and, when the game just
// ended, the final result plus the owner's aggregate stats.
func (s *Server) persistProgress(ctx context.Context, sess *game.Session, userID string, recordGuess, wrong bool, now time.Time) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if recordGuess {
		if err := storage.RecordGuess(ctx, tx, sess.ID, wrong); err != nil {
			log.Warn().Err(err).Str("game", sess.ID).Msg("record guess")
			return
		}
	}
	if sess.Status.Terminal() {
		if err := storage.FinishGame(ctx, tx, sess.ID, string(sess.Status), sess.Lives, now); err != nil {
			log.Warn().Err(err).Str("game", sess.ID).Msg("finish game")
			return
		}
		if userID != "" {
			if err := storage.BumpStats(ctx, tx, userID, sess.Status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", userID).Msg("bump stats")
				return
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("game", sess.ID).Msg("commit progress")
	}
}

// writeGameError maps domain errors onto HTTP status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
	case errors.Is(err, game.ErrAlreadyGuessed):
		http.Error(w, `{"error":"already_guessed"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrInvalidGuess):
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrUnknownMode):
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrNoLetters):
		http.Error(w, `{"error":"invalid_secret"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrHintUsed):
		http.Error(w, `{"error":"hint_used"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNoHintLeft):
		http.Error(w, `{"error":"no_hint_left"}`, http.StatusConflict)
	default:
		log.Error().Err(err).Msg("unhandled game error")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
