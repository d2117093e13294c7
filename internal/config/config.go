// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret is the development fallback for SESSION_SECRET.
const DefaultSessionSecret = "dev-secret-key-change-in-production"

// Dialect names the SQL engine behind a database URL.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ErrUnsupportedDatabase is returned for DATABASE_URL schemes with no driver.
var ErrUnsupportedDatabase = errors.New("unsupported DATABASE_URL scheme")

// Config holds server configuration.
type Config struct {
	DatabaseURL        string `env:"DATABASE_URL"`
	SessionSecret      string `env:"SESSION_SECRET" envDefault:"dev-secret-key-change-in-production"`
	Addr               string `env:"FURNITECH_ADDR" envDefault:":5000"`
	Env                string `env:"FURNITECH_ENV" envDefault:"development"`
	StaticDir          string `env:"FURNITECH_STATIC_DIR" envDefault:"static"`
	UploadDir          string `env:"FURNITECH_UPLOAD_DIR" envDefault:"static/uploads"`
	MaxRequestBytes    int64  `env:"FURNITECH_MAX_REQUEST_BYTES" envDefault:"5242880"`
	AdminUsername      string `env:"FURNITECH_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword      string `env:"FURNITECH_ADMIN_PASSWORD" envDefault:"admin123"`
	ResendKey          string `env:"FURNITECH_RESEND_KEY"`
	EmailFrom          string `env:"FURNITECH_EMAIL_FROM" envDefault:"MTS Furnitech <noreply@mtsfurnitech.com>"`
	LogLevel           string `env:"FURNITECH_LOG_LEVEL" envDefault:"info"`
	SlowRequestMs      int    `env:"FURNITECH_SLOW_REQUEST_MS" envDefault:"200"`
	SlowQueryMs        int    `env:"FURNITECH_SLOW_QUERY_MS" envDefault:"50"`
	RateLimitPerSecond int    `env:"FURNITECH_RATE_LIMIT" envDefault:"10"`
}

// Database describes how to open the configured store.
type Database struct {
	Driver  string
	DSN     string
	Dialect Dialect
	// Path is the SQLite file path; empty for other dialects.
	Path string
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are unsafe or unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("SESSION_SECRET cannot be empty")
	}
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.MaxRequestBytes <= 0 {
		return errors.New("FURNITECH_MAX_REQUEST_BYTES must be positive")
	}
	if _, err := c.Database(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const sqlitePragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// Database resolves DatabaseURL into a driver name and DSN.
// An unset URL falls back to a local SQLite file; the legacy postgres://
// scheme is rewritten to postgresql://.
func (c Config) Database() (Database, error) {
	url := strings.TrimSpace(c.DatabaseURL)
	if url == "" {
		url = "sqlite:///furnitech.db"
	}

	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}

	switch {
	case strings.HasPrefix(url, "postgresql://"):
		return Database{Driver: "pgx", DSN: url, Dialect: DialectPostgres}, nil
	case strings.HasPrefix(url, "sqlite:///"):
		return sqliteDatabase(strings.TrimPrefix(url, "sqlite:///")), nil
	case url == "sqlite://" || url == "sqlite:":
		return sqliteDatabase(":memory:"), nil
	case strings.HasPrefix(url, "file:"):
		return sqliteDatabase(strings.TrimPrefix(url, "file:")), nil
	}
	return Database{}, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, schemeOf(url))
}

func sqliteDatabase(path string) Database {
	if path == "" {
		path = "furnitech.db"
	}
	if path == ":memory:" {
		return Database{Driver: "sqlite", DSN: path, Dialect: DialectSQLite, Path: path}
	}
	return Database{Driver: "sqlite", DSN: path + sqlitePragmas, Dialect: DialectSQLite, Path: path}
}

func schemeOf(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return url
}
