package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.HistoryBackend)
	assert.Equal(t, 30*time.Second, cfg.HistoryCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.MatchTokenTTL)
	assert.False(t, cfg.AutoSaveGames)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "")
	t.Setenv("FRONTEND_URL", "https://connect4.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com ,,https://connect4.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://connect4.example.com",
		"http://localhost:5173",
		"https://a.example.com",
	}, cfg.AllowedOrigins)
}

func TestLoadConfigPostgresNeedsURL(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfigAddsSimpleProtocol(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/connect4?sslmode=disable")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.HistoryBackend)
	assert.Contains(t, cfg.DatabaseURL, "default_query_exec_mode=simple_protocol")
	assert.Contains(t, cfg.DatabaseURL, "sslmode=disable")
}

func TestWithSimpleProtocol(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"url", "postgres://u:p@db:5432/connect4", "postgres://u:p@db:5432/connect4?default_query_exec_mode=simple_protocol"},
		{"postgresql scheme", "postgresql://db/connect4", "postgresql://db/connect4?default_query_exec_mode=simple_protocol"},
		{"keyword dsn", "host=db user=app dbname=connect4", "host=db user=app dbname=connect4 default_query_exec_mode=simple_protocol"},
		{"already set", "host=db default_query_exec_mode=exec", "host=db default_query_exec_mode=exec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withSimpleProtocol(tt.in))
		})
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "localstorage")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unknown history backend")
}

func TestLoadConfigParseError(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "")
	t.Setenv("MATCH_TOKEN_TTL", "forever")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "parse env:")
}
