// Package config loads runtime settings from CASEFILE_* environment variables.
// Command-line flags override individual fields after Load.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config is the full runtime configuration.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`
	MCPAddr     string `env:"MCP_ADDR" envDefault:":8081"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// ContentPath is a catalog file or directory. Empty serves the built-in test investigation.
	ContentPath string `env:"CONTENT_PATH"`

	StoreDriver string `env:"STORE" envDefault:"memory"`
	FileDir     string `env:"FILE_DIR" envDefault:".casefile/sessions"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"casefile.db"`

	Redis Redis `envPrefix:"REDIS_"`

	Locking bool          `env:"LOCKING"`
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// Redis holds the connection settings for the redis driver and locker.
type Redis struct {
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	Prefix   string        `env:"PREFIX" envDefault:"casefile:session:"`
	TTL      time.Duration `env:"TTL"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "CASEFILE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverFile, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q (want memory, file, redis or sqlite)", c.StoreDriver)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("lock ttl must be positive")
	}
	return nil
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
