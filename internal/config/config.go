// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (missing is fine),
// then variables are parsed into Config.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds the server configuration.
type Config struct {
	Port           string        `env:"PORT" envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"` // json | console
	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"*"`
	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"./data/yahtzee.db"`
	BoltPath       string        `env:"BOLT_PATH" envDefault:"./data/yahtzee.bolt"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite, DriverBolt:
	default:
		return Config{}, fmt.Errorf("parse env: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: REQUEST_TIMEOUT must be positive")
	}
	return cfg, nil
}
