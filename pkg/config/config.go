// Package config loads server configuration from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultPort          = "8000"
	DefaultDataPath      = "lecturebot.db"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultLogLevel      = "info"
	DefaultRateLimit     = 10000
	DefaultCountdownTick = time.Minute
)

// EnvPaths are the .env locations tried, first hit wins
var EnvPaths = []string{".env", "../.env", "../../.env"}

// Config holds everything the server reads at startup.
type Config struct {
	Port    string
	GinMode string

	// DatabaseURL selects Postgres when set; otherwise sqlite at DataPath.
	DatabaseURL string
	DataPath    string

	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string

	// TimetablePath points at a YAML timetable; empty uses the built-in term.
	TimetablePath string

	LogLevel string
	LogJSON  bool

	CountdownTick time.Duration
}

// LoadEnv loads the first .env file found in paths.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = EnvPaths
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load loads .env and reads the environment into a Config.
func Load() (*Config, error) {
	LoadEnv()
	return FromEnv()
}

// FromEnv reads the process environment into a Config.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", DefaultPort),
		GinMode:         os.Getenv("GIN_MODE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", DefaultDataPath),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getenv("ADMIN_USERNAME", DefaultAdminUsername),
		AdminPassword:   getenv("ADMIN_PASSWORD", DefaultAdminPassword),
		TimetablePath:   os.Getenv("TIMETABLE_PATH"),
		LogLevel:        getenv("LOG_LEVEL", DefaultLogLevel),
		CountdownTick:   DefaultCountdownTick,
	}

	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_JSON %q: %w", v, err)
		}
		cfg.LogJSON = b
	}
	if v := os.Getenv("COUNTDOWN_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COUNTDOWN_TICK %q: %w", v, err)
		}
		cfg.CountdownTick = d
	}

	return cfg, cfg.Validate()
}

// Release reports whether gin runs in release mode (the default).
func (c *Config) Release() bool {
	return c.GinMode == "" || c.GinMode == "release"
}

// Validate checks for settings the server cannot run without.
func (c *Config) Validate() error {
	if c.CountdownTick <= 0 {
		return errors.New("COUNTDOWN_TICK must be positive")
	}
	if c.Release() {
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in release mode")
		}
		if c.APIMasterSecret == "" {
			return errors.New("API_MASTER_SECRET is required in release mode")
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
