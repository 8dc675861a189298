// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     per-IP guess rate limiting).
//   - Public endpoints: "/", "/health", "/debug/words", "/leaderboard".
//   - Game endpoints (optional auth): /game/new, /game/guess, /game/hint,
//     GET/DELETE /game/{id}.
//   - Daily challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /games/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes still run for guests, who are tracked by an
//     anonymous cookie ID.
//   - The per-guess countdown is metered server-side from each session's
//     turn start, so clients cannot stretch the 15 seconds.

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hangman/internal/config"
	"hangman/internal/daily"
	"hangman/internal/store"
	"hangman/internal/words"
)

// Server bundles router, config, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	db    *sql.DB
	now   func() time.Time // injectable clock for tests

	// daily challenge state: one live session per player per day
	dailyMu       sync.Mutex
	dailySessions map[string]*dailySession
	dailyStore    *daily.Store

	limiter *ipLimiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:             chi.NewRouter(),
		cfg:           cfg,
		store:         st,
		db:            db,
		now:           time.Now,
		dailySessions: make(map[string]*dailySession),
		dailyStore:    daily.NewStore(db),
		limiter:       newIPLimiter(cfg.GuessRatePerMinute, cfg.GuessRateBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromConfig(cfg))             // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/hint","/daily/*","/auth/*","/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		wc, pc := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"words": wc, "phrases": pc})
	})

	// Game endpoints: OPTIONAL AUTH (guests can play)
	limited := s.r.With(s.withOptionalAuth(), s.guessRateLimit())
	limited.Post("/game/new", s.handleNewGame)
	limited.Post("/game/guess", s.handleGuess)
	limited.Post("/game/hint", s.handleHint)
	s.r.With(s.withOptionalAuth()).Get("/game/{id}", s.handleGameState)
	s.r.With(s.withOptionalAuth()).Delete("/game/{id}", s.handleAbandon)

	// Daily challenge: OPTIONAL AUTH (guests can play; results persisted)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth) and the public leaderboard
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("hangman server listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromConfig enables credentialed CORS for the configured client origin.
func corsFromConfig(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", cfg.ClientOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const anonCookieName = "hangman_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate guest games with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := newID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: s.cookieSameSite(),
		Expires:  s.now().Add(180 * 24 * time.Hour),
	})
	return id
}

// cookieSameSite picks the SameSite mode: None is required for third-party
// contexts when Secure, Lax everywhere else.
func (s *Server) cookieSameSite() http.SameSite {
	if s.cfg.Production() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// newID returns a URL-safe random identifier for anonymous visitors.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("anon-%d", time.Now().UnixNano())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
