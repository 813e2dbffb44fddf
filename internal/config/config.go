// Package config loads the application configuration from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port            int           `env:"PORT"             envDefault:"8080"`
	Env             string        `env:"APP_ENV"          envDefault:"local"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	Store           string        `env:"STORE"            envDefault:"postgres"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"https://*,http://*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Database Database
	Tracing  Tracing
}

// Database holds the postgres connection settings.
type Database struct {
	Host            string        `env:"BLUEPRINT_DB_HOST"     envDefault:"localhost"`
	Port            string        `env:"BLUEPRINT_DB_PORT"     envDefault:"5432"`
	Name            string        `env:"BLUEPRINT_DB_DATABASE"`
	Username        string        `env:"BLUEPRINT_DB_USERNAME"`
	Password        string        `env:"BLUEPRINT_DB_PASSWORD"`
	Schema          string        `env:"BLUEPRINT_DB_SCHEMA"   envDefault:"public"`
	SSLMode         string        `env:"BLUEPRINT_DB_SSLMODE"  envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"     envDefault:"100"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"     envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME"  envDefault:"1h"`
	SlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD"     envDefault:"1s"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE"       envDefault:"true"`
}

// DSN renders the settings as a libpq keyword/value connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=%s",
		d.Host, d.Username, d.Password, d.Name, d.Port, d.SSLMode, d.Schema)
}

// Tracing is opt-in; spans are exported only when enabled and an endpoint is set.
type Tracing struct {
	Enabled     bool   `env:"OTEL_ENABLED"                envDefault:"false"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME"           envDefault:"portfolio-backend"`
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch c.Store {
	case StorePostgres:
		if c.Database.Name == "" {
			return fmt.Errorf("BLUEPRINT_DB_DATABASE is required when STORE=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q (want %s or %s)", c.Store, StorePostgres, StoreMemory)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) IsLocal() bool { return c.Env == "local" }
