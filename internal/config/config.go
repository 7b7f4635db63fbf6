package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the combat host.
type Server struct {
	// Network
	BindAddress string   `yaml:"bind_address"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database (Player Store). Disabled = in-memory profiles.
	Database DatabaseConfig `yaml:"database"`

	// Per-player input flood protection
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// How often session mana is flushed to the Player Store.
	PersistInterval time.Duration `yaml:"persist_interval"`

	// Optional YAML skill catalog; empty = built-in tables.
	CatalogPath string `yaml:"catalog_path"`

	// Starting profile for players unknown to the in-memory store.
	DefaultMaxMana int `yaml:"default_max_mana"`

	Combat Combat `yaml:"combat"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RateLimitConfig configures the per-player cast limiter.
type RateLimitConfig struct {
	CastsPerSecond float64 `yaml:"casts_per_second"`
	Burst          int     `yaml:"burst"`
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress: "0.0.0.0",
		Port:        8080,
		CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		LogLevel:    "info",
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arcana",
			Password: "arcana",
			DBName:   "arcana",
			SSLMode:  "disable",
		},
		RateLimit: RateLimitConfig{
			CastsPerSecond: 10,
			Burst:          5,
		},
		PersistInterval: 30 * time.Second,
		DefaultMaxMana:  100,
		Combat:          DefaultCombat(),
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Combat.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.PersistInterval <= 0 {
		return cfg, fmt.Errorf("config %s: persist_interval must be positive", path)
	}

	return cfg, nil
}
