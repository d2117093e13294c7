package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// TestConfig_Database tests DATABASE_URL normalization.
func TestConfig_Database(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantDriver  string
		wantDialect Dialect
		wantDSN     string
		wantPath    string
	}{
		{name: "unset falls back to local sqlite", url: "", wantDriver: "sqlite", wantDialect: DialectSQLite, wantPath: "furnitech.db"},
		{name: "blank falls back to local sqlite", url: "   ", wantDriver: "sqlite", wantDialect: DialectSQLite, wantPath: "furnitech.db"},
		{name: "sqlite url", url: "sqlite:///data/site.db", wantDriver: "sqlite", wantDialect: DialectSQLite, wantPath: "data/site.db"},
		{name: "sqlite memory", url: "sqlite://", wantDriver: "sqlite", wantDialect: DialectSQLite, wantDSN: ":memory:", wantPath: ":memory:"},
		{name: "legacy postgres scheme", url: "postgres://u:p@db:5432/site", wantDriver: "pgx", wantDialect: DialectPostgres, wantDSN: "postgresql://u:p@db:5432/site"},
		{name: "postgresql scheme untouched", url: "postgresql://u:p@db/site", wantDriver: "pgx", wantDialect: DialectPostgres, wantDSN: "postgresql://u:p@db/site"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Config{DatabaseURL: tt.url}.Database()
			if err != nil {
				t.Fatalf("Database() error = %v", err)
			}
			if db.Driver != tt.wantDriver {
				t.Errorf("Driver = %q, want %q", db.Driver, tt.wantDriver)
			}
			if db.Dialect != tt.wantDialect {
				t.Errorf("Dialect = %q, want %q", db.Dialect, tt.wantDialect)
			}
			if tt.wantDSN != "" && db.DSN != tt.wantDSN {
				t.Errorf("DSN = %q, want %q", db.DSN, tt.wantDSN)
			}
			if db.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", db.Path, tt.wantPath)
			}
		})
	}
}

// TestConfig_Database_SQLitePragmas verifies file databases get WAL and busy timeout.
func TestConfig_Database_SQLitePragmas(t *testing.T) {
	db, err := Config{}.Database()
	if err != nil {
		t.Fatalf("Database() error = %v", err)
	}
	if !strings.HasPrefix(db.DSN, "furnitech.db?") {
		t.Errorf("DSN = %q, want furnitech.db with pragmas", db.DSN)
	}
	for _, p := range []string{"journal_mode(WAL)", "busy_timeout(5000)", "foreign_keys(ON)"} {
		if !strings.Contains(db.DSN, p) {
			t.Errorf("DSN %q missing pragma %s", db.DSN, p)
		}
	}
}

// TestConfig_Database_Unsupported rejects unknown schemes.
func TestConfig_Database_Unsupported(t *testing.T) {
	_, err := Config{DatabaseURL: "mysql://root@localhost/site"}.Database()
	if !errors.Is(err, ErrUnsupportedDatabase) {
		t.Fatalf("err = %v, want ErrUnsupportedDatabase", err)
	}
}

// TestConfig_Validate tests validation of Config.
func TestConfig_Validate(t *testing.T) {
	base := Config{SessionSecret: "s3cret", MaxRequestBytes: 5 << 20}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.SessionSecret = "" }, wantErr: true},
		{name: "default secret in development", mutate: func(c *Config) { c.SessionSecret = DefaultSessionSecret }},
		{name: "default secret in production", mutate: func(c *Config) {
			c.SessionSecret = DefaultSessionSecret
			c.Env = "production"
		}, wantErr: true},
		{name: "zero body cap", mutate: func(c *Config) { c.MaxRequestBytes = 0 }, wantErr: true},
		{name: "bad database", mutate: func(c *Config) { c.DatabaseURL = "mongodb://x" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoad_FromEnv verifies env tags and envDefault values are applied.
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("FURNITECH_ENV", "development")
	t.Setenv("FURNITECH_ADDR", ":9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}
	if cfg.SessionSecret != "test-secret" {
		t.Errorf("SessionSecret = %q, want test-secret", cfg.SessionSecret)
	}
	if cfg.AdminUsername == "" {
		t.Error("AdminUsername should have a default")
	}
}

// TestConfig_SlogLevel tests log level mapping.
func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
