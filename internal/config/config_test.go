package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sapper/internal/sapper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.True(t, config.Development())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"mode": "production",
		"addr": ":9000",
		"jwt": {"secret": "hunter2", "token_lifetime": "2h"},
		"sessions": {"idle_timeout": "10m", "sweep_interval": 30000000000},
		"difficulties": [{"name": "tiny", "rows": 5, "columns": 5, "mine_count": 3}]
	}`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.True(t, config.Production())
	assert.Equal(t, ":9000", config.Addr)
	assert.Equal(t, 2*time.Hour, config.Jwt.TokenLifetime.Duration)
	assert.Equal(t, 10*time.Minute, config.Sessions.IdleTimeout.Duration)
	assert.Equal(t, 30*time.Second, config.Sessions.SweepInterval.Duration)
	assert.Equal(t, []sapper.Difficulty{
		{Name: "tiny", Rows: 5, Columns: 5, MineCount: 3},
	}, config.Difficulties)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"addr": ":9000"}`)
	t.Setenv("SAPPER_ADDR", ":7000")
	t.Setenv("SAPPER_JWT_TOKEN_LIFETIME", "45m")
	t.Setenv("SAPPER_COOKIES_SECURE", "true")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", config.Addr)
	assert.Equal(t, 45*time.Minute, config.Jwt.TokenLifetime.Duration)
	assert.True(t, config.Cookies.Secure)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"addr": `},
		{"unplaceable difficulty", `{"difficulties": [{"name": "x", "rows": 3, "columns": 3, "mine_count": 1}]}`},
		{"unnamed difficulty", `{"difficulties": [{"rows": 9, "columns": 9, "mine_count": 10}]}`},
		{"duplicate difficulty", `{"difficulties": [
			{"name": "x", "rows": 9, "columns": 9, "mine_count": 10},
			{"name": "x", "rows": 9, "columns": 9, "mine_count": 12}
		]}`},
		{"production without secret", `{"mode": "production"}`},
		{"bad duration", `{"sessions": {"idle_timeout": true}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.content))
			assert.Error(t, err)
		})
	}
}

func TestCookiesRoundTrip(t *testing.T) {
	j, err := NewJWT(JwtConfig{Secret: "secret", TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)
	cookies := NewCookies(CookiesConfig{SameSite: "lax"}, j)
	assert.Equal(t, http.SameSiteLaxMode, cookies.SameSite)

	id := uuid.New()
	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Issue(rec, id))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	claims, err := cookies.ParseSessionClaims(r)
	require.NoError(t, err)
	assert.Equal(t, id, claims.GameSessionId)

	other, err := NewJWT(JwtConfig{Secret: "other", TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)
	_, err = NewCookies(CookiesConfig{}, other).ParseSessionClaims(r)
	assert.Error(t, err, "token signed with another key")

	_, err = cookies.ParseSessionClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, http.ErrNoCookie)
}

func TestWebSocketCheckOrigin(t *testing.T) {
	request := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	restricted := NewWebSocket([]string{"https://sapper.example"})
	assert.True(t, restricted.Upgrader.CheckOrigin(request("https://sapper.example")))
	assert.False(t, restricted.Upgrader.CheckOrigin(request("https://evil.example")))
	assert.True(t, restricted.Upgrader.CheckOrigin(request("")))

	open := NewWebSocket(nil)
	assert.True(t, open.Upgrader.CheckOrigin(request("https://evil.example")))
}
