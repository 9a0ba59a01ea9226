package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, env := range []string{"DATABASE_URL", "DB_URL", "FXQL_PORT", "PORT"} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, 30*time.Second)
	}
	if cfg.Parser.MaxEntries != 1000 {
		t.Errorf("Parser.MaxEntries = %d, want %d", cfg.Parser.MaxEntries, 1000)
	}
	if cfg.Parser.MaxBodyBytes != 1<<20 {
		t.Errorf("Parser.MaxBodyBytes = %d, want %d", cfg.Parser.MaxBodyBytes, 1<<20)
	}
	if cfg.Database.MemoryMaxBatches != 10000 {
		t.Errorf("Database.MemoryMaxBatches = %d, want %d", cfg.Database.MemoryMaxBatches, 10000)
	}
	if cfg.HasDatabase() {
		t.Errorf("HasDatabase() = true without DATABASE_URL")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("FXQL_PORT", "9090")
	t.Setenv("FXQL_MAX_ENTRIES", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_URL", "postgres://localhost/fxql")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("Server.Addr() = %q, want %q", cfg.Server.Addr(), "0.0.0.0:9090")
	}
	if cfg.Parser.MaxEntries != 10 {
		t.Errorf("Parser.MaxEntries = %d, want %d", cfg.Parser.MaxEntries, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !cfg.HasDatabase() {
		t.Errorf("HasDatabase() = false, want true from DB_URL")
	}
	if strings.Contains(cfg.String(), "postgres://") {
		t.Errorf("String() leaks the database URL: %s", cfg.String())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name, env, value, want string
	}{
		{"not an integer", "FXQL_PORT", "http", "invalid value for FXQL_PORT"},
		{"port out of range", "FXQL_PORT", "70000", "FXQL_PORT (70000) must be 1-65535"},
		{"bad duration", "FXQL_READ_TIMEOUT", "soon", "invalid duration"},
		{"bad level", "LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"bad format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"negative max entries", "FXQL_MAX_ENTRIES", "-1", "FXQL_MAX_ENTRIES"},
		{"negative memory batches", "FXQL_MEMORY_MAX_BATCHES", "-1", "FXQL_MEMORY_MAX_BATCHES"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() succeeded with %s=%q", tc.env, tc.value)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestValidate_DatabasePool(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fxql")
	t.Setenv("DB_MAX_CONNS", "1")
	t.Setenv("DB_MIN_CONNS", "4")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DB_MAX_CONNS (1) must be >= DB_MIN_CONNS (4)") {
		t.Errorf("Load() error = %v, want pool size error", err)
	}
}
