package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"5000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Frontend & CORS
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// History storage
	HistoryBackend       string `env:"HISTORY_BACKEND" envDefault:"memory"`
	DatabaseURL          string `env:"DATABASE_URL"`
	DBMaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLifetimeMin int    `env:"DB_CONN_MAX_LIFETIME_MINUTES" envDefault:"5"`
	SQLitePath           string `env:"SQLITE_PATH" envDefault:"data/connect4.db"`
	MongoURI             string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase        string `env:"MONGO_DATABASE" envDefault:"connect4"`

	// Optional history cache, empty REDIS_URL disables it
	RedisURL        string        `env:"REDIS_URL"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	HistoryCacheTTL time.Duration `env:"HISTORY_CACHE_TTL" envDefault:"30s"`

	// Security
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-this-in-production"`
	MatchTokenTTL time.Duration `env:"MATCH_TOKEN_TTL" envDefault:"24h"`

	// Matches
	AutoSaveGames    bool          `env:"AUTO_SAVE_GAMES" envDefault:"false"`
	CleanupInterval  time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
	FinishedMatchTTL time.Duration `env:"FINISHED_MATCH_TTL" envDefault:"1h"`
	StaleMatchTTL    time.Duration `env:"STALE_MATCH_TTL" envDefault:"24h"`
}

// LoadConfig reads the environment (after godotenv has populated it) and
// applies the derived settings.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.AllowedOrigins = buildAllowedOrigins(cfg.FrontendURL, cfg.AllowedOrigins)
	cfg.DatabaseURL = withSimpleProtocol(cfg.DatabaseURL)
	cfg.HistoryBackend = strings.ToLower(strings.TrimSpace(cfg.HistoryBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.HistoryBackend {
	case BackendMemory, BackendSQLite, BackendMongo:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s history backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown history backend %q", c.HistoryBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Build allowed origins list (Frontend URL + Localhost + CSV values)
func buildAllowedOrigins(frontendURL string, extras []string) []string {
	candidates := append([]string{
		frontendURL,
		"http://localhost:5173", // Local development
	}, extras...)

	origins := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, origin := range candidates {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		origins = append(origins, trimmed)
	}
	return origins
}

// Append simple_protocol for PgBouncer compatibility (pgx driver)
func withSimpleProtocol(dbURL string) string {
	if dbURL == "" || strings.Contains(dbURL, "default_query_exec_mode") {
		return dbURL
	}
	u, err := url.Parse(dbURL)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		// keyword/value DSN such as "host=db user=app dbname=connect4"
		return strings.TrimSpace(dbURL) + " default_query_exec_mode=simple_protocol"
	}
	q := u.Query()
	q.Set("default_query_exec_mode", "simple_protocol")
	u.RawQuery = q.Encode()
	return u.String()
}
