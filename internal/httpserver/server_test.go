package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangman/internal/config"
	"hangman/internal/storage"
	"hangman/internal/store"
	"hangman/internal/words"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func testConfig() config.Config {
	return config.Config{
		Port:               "0",
		LogLevel:           "error",
		Environment:        "test",
		ClientOrigin:       "http://localhost:5173",
		CookieName:         "hangman_token",
		JWTSecret:          "test_secret_0123456789",
		JWTExpiresDays:     1,
		DailySalt:          "test_salt",
		GuessRatePerMinute: 6000,
		GuessRateBurst:     1000,
	}
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	require.NoError(t, words.Load("", ""))

	db, err := storage.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.InitSchema(db))

	return New(cfg, store.NewMemoryStore(), db)
}

// doReq drives one request through the full middleware stack.
func doReq(t *testing.T, srv *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.RemoteAddr = "192.0.2.10:40000"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) gameStateRes {
	t.Helper()
	var res gameStateRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

// cookieByName digs a named cookie out of a recorded response.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestServiceInfo(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"hangman"`)
}

func TestDebugWords(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodGet, "/debug/words", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Greater(t, res["words"], 0)
	assert.Greater(t, res["phrases"], 0)
}

func TestJSONNotFound(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"not_found"`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodOptions, "/game/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestAnonCookieIssuedToGuests(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doReq(t, srv, http.MethodPost, "/game/new", map[string]string{"secret": "cat"})
	require.Equal(t, http.StatusOK, rec.Code)

	anon := cookieByName(rec, anonCookieName)
	require.NotNil(t, anon)
	assert.NotEmpty(t, anon.Value)
	assert.True(t, anon.HttpOnly)
}
