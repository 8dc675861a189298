package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears an env var for the test and restores it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, os.Getenv(key)) // register restore
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_PATH", "LOG_LEVEL", "APP_ENV", "CLIENT_ORIGIN",
		"COOKIE_NAME", "JWT_SECRET", "JWT_EXPIRES_DAYS", "WORDS_FILE",
		"PHRASES_FILE", "WATCH_WORD_FILES", "DAILY_SALT",
		"GUESS_RATE_PER_MINUTE", "GUESS_RATE_BURST",
	} {
		unset(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/hangman.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "hangman_token", cfg.CookieName)
	assert.Equal(t, 14, cfg.JWTExpiresDays)
	assert.Empty(t, cfg.WordsFile)
	assert.False(t, cfg.WatchWordFiles)
	assert.Equal(t, 120.0, cfg.GuessRatePerMinute)
	assert.Equal(t, 20, cfg.GuessRateBurst)
	assert.False(t, cfg.Production())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("WATCH_WORD_FILES", "true")
	t.Setenv("GUESS_RATE_PER_MINUTE", "30")
	t.Setenv("JWT_EXPIRES_DAYS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.WatchWordFiles)
	assert.Equal(t, 30.0, cfg.GuessRatePerMinute)
	assert.Equal(t, 2, cfg.JWTExpiresDays)
	assert.True(t, cfg.Production())
}

func TestProduction(t *testing.T) {
	assert.True(t, Config{Environment: "production"}.Production())
	assert.False(t, Config{Environment: "development"}.Production())
	assert.False(t, Config{Environment: "staging"}.Production())
}
