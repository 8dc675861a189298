// internal/httpserver/routes_auth.go
//
// Account endpoints and the JWT/cookie plumbing shared by the rest of the
// server:
//   POST /auth/signup   create account, sign in, claim any anonymous games
//   POST /auth/login    verify credentials, sign in, claim anonymous games
//   POST /auth/logout   clear the auth cookie
//   GET  /auth/me       current account
//   GET  /stats/me      aggregate win stats for the current account
//   GET  /games/mine    recent games for the current account
//   GET  /leaderboard   public all-time ranking
//
// Tokens are HS256 JWTs carried in an HttpOnly cookie (SPA-friendly) or an
// Authorization: Bearer header (curl-friendly).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"hangman/internal/storage"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFrom returns the authenticated user ID, or "" for guests.
func userIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/auth/me", s.handleMe)
		r.Get("/stats/me", s.handleMyStats)
		r.Get("/games/mine", s.handleMyGames)
	})

	s.r.Get("/leaderboard", s.handleLeaderboard)
}

// ------------------------------ middleware ---------------------------------

// withOptionalAuth attaches the user ID to the context when a valid token is
// present and lets the request through either way.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid, ok := s.userIDFromRequest(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, uid))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth rejects requests without a valid token.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := s.userIDFromRequest(r)
			if !ok {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, uid)))
		})
	}
}

// userIDFromRequest extracts and verifies a token from the auth cookie or an
// Authorization: Bearer header.
func (s *Server) userIDFromRequest(r *http.Request) (string, bool) {
	raw := ""
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		raw = c.Value
	}
	if raw == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if raw == "" {
		return "", false
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, sub != ""
}

// -------------------------------- tokens -----------------------------------

func (s *Server) signJWT(userID string) (string, error) {
	expires := time.Now().Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": expires.Unix(),
		"iat": time.Now().Unix(),
	})
	return tok.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: s.cookieSameSite(),
		Expires:  time.Now().Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour),
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: s.cookieSameSite(),
		MaxAge:   -1,
	})
}

// ------------------------------- handlers ----------------------------------

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	u, err := storage.CreateUser(r.Context(), s.db, req.Username, req.Password)
	switch {
	case errors.Is(err, storage.ErrUsernameTaken):
		http.Error(w, `{"error":"username_taken"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	s.signIn(w, r, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	u, err := storage.FindUserByUsername(r.Context(), s.db, req.Username)
	if err != nil || !storage.CheckPassword(u.PasswordHash, req.Password) {
		http.Error(w, `{"error":"invalid_credentials"}`, http.StatusUnauthorized)
		return
	}

	s.signIn(w, r, u)
}

// signIn issues the cookie and folds any anonymous games into the account.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *storage.User) {
	token, err := s.signJWT(u.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign jwt")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, token)

	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		if err := storage.ClaimAnonGames(r.Context(), s.db, c.Value, u.ID); err != nil {
			log.Warn().Err(err).Str("user", u.ID).Msg("claim anon games")
		}
	}

	log.Info().Str("user", u.ID).Str("username", u.Username).Msg("signed in")
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := storage.FindUserByID(r.Context(), s.db, userIDFrom(r.Context()))
	if err != nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	u, err := storage.FindUserByID(r.Context(), s.db, userIDFrom(r.Context()))
	if err != nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	winRate := 0.0
	if u.GamesPlayed > 0 {
		winRate = float64(u.Wins) / float64(u.GamesPlayed)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
		"winRate":     winRate,
	})
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	rows, err := storage.RecentGames(r.Context(), s.db, userIDFrom(r.Context()), 50)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": rows})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := storage.TopWinners(r.Context(), s.db, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaders": rows})
}
