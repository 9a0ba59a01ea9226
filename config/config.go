// Package config loads the settings of the fxql server from environment
// variables, with defaults, and validates them on startup.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Parser   ParserConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"FXQL_HOST" default:"0.0.0.0"`
	Port            int           `env:"FXQL_PORT" envAlt:"PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"FXQL_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"FXQL_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"FXQL_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"FXQL_SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `env:"FXQL_REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds the optional PostgreSQL settings. Without a URL
// parsed entries are kept in memory.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" envAlt:"DB_URL"`
	MaxConns int    `env:"DB_MAX_CONNS" default:"10"`
	MinConns int    `env:"DB_MIN_CONNS" default:"1"`

	// MemoryMaxBatches bounds the batches kept without a database, the
	// oldest are evicted first. 0 keeps them all.
	MemoryMaxBatches int `env:"FXQL_MEMORY_MAX_BATCHES" default:"10000"`
}

// ParserConfig holds the limits applied around the parser.
type ParserConfig struct {
	// MaxEntries is the largest number of entries accepted in one request.
	MaxEntries int `env:"FXQL_MAX_ENTRIES" default:"1000"`

	// MaxBodyBytes bounds the request body size.
	MaxBodyBytes int64 `env:"FXQL_MAX_BODY_BYTES" default:"1048576"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// HasDatabase reports whether entries should be persisted in PostgreSQL.
func (c *Config) HasDatabase() bool { return c.Database.URL != "" }

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("FXQL_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "FXQL_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "FXQL_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "FXQL_REQUEST_TIMEOUT must be positive")
	}

	if c.HasDatabase() {
		if c.Database.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Database.MinConns < 0 {
			errs = append(errs, "DB_MIN_CONNS must be non-negative")
		}
		if c.Database.MaxConns < c.Database.MinConns {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
				c.Database.MaxConns, c.Database.MinConns))
		}
	}

	if c.Database.MemoryMaxBatches < 0 {
		errs = append(errs, "FXQL_MEMORY_MAX_BATCHES must be non-negative")
	}

	if c.Parser.MaxEntries < 0 {
		errs = append(errs, "FXQL_MAX_ENTRIES must be non-negative")
	}
	if c.Parser.MaxBodyBytes <= 0 {
		errs = append(errs, "FXQL_MAX_BODY_BYTES must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	db := "memory"
	if c.HasDatabase() {
		db = fmt.Sprintf("{URL: [MASKED], MaxConns: %d, MinConns: %d}", c.Database.MaxConns, c.Database.MinConns)
	}
	return fmt.Sprintf("Config{Server: {Host: %q, Port: %d}, Database: %s, Parser: {MaxEntries: %d, MaxBodyBytes: %d}, Logging: {Level: %q, Format: %q}}",
		c.Server.Host, c.Server.Port, db, c.Parser.MaxEntries, c.Parser.MaxBodyBytes, c.Logging.Level, c.Logging.Format)
}
