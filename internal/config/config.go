// Package config loads server configuration from the environment,
// optionally seeded from a .env file in development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every knob the server binary reads.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DBPath      string `env:"DB_PATH" envDefault:"./data/hangman.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// CORS / cookies / auth
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"hangman_token"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`

	// Dictionaries. Empty paths select the embedded defaults.
	WordsFile      string `env:"WORDS_FILE"`
	PhrasesFile    string `env:"PHRASES_FILE"`
	WatchWordFiles bool   `env:"WATCH_WORD_FILES"`

	// Daily challenge
	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	// Guess rate limiting, per client IP.
	GuessRatePerMinute float64 `env:"GUESS_RATE_PER_MINUTE" envDefault:"120"`
	GuessRateBurst     int     `env:"GUESS_RATE_BURST" envDefault:"20"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the server runs with production hardening
// (secure cookies, cross-site cookie mode).
func (c Config) Production() bool { return c.Environment == "production" }
