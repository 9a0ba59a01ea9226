package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/fxql/config"
	"github.com/etnz/fxql/logging"
	"github.com/etnz/fxql/server"
	"github.com/etnz/fxql/store"
	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type serveCmd struct {
	envFile string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the FXQL statement parser over HTTP" }
func (*serveCmd) Usage() string {
	return `fxql serve [-env <file>]

  Starts the HTTP server. Settings are read from the environment, after
  loading the optional env file. Parsed entries are recorded in PostgreSQL
  when DATABASE_URL is set, in memory otherwise. The memory store keeps the
  last FXQL_MEMORY_MAX_BATCHES batches and loses them on restart.

  Endpoints:
    POST /fxql-statements          parse {"FXQL": "..."}
    GET  /fxql-statements/{batch}  entries of a previous request
    GET  /healthz

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.envFile, "env", ".env", "env file loaded before reading the configuration")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: could not load %q: %v\n", c.envFile, err)
		return subcommands.ExitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	srv := server.New(cfg, st)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// openStore returns the PostgreSQL store when a database is configured, the
// in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (server.Store, func(), error) {
	if !cfg.HasDatabase() {
		slog.Info("no database configured, entries are kept in memory", "max_batches", cfg.Database.MemoryMaxBatches)
		return store.NewBoundedMemory(cfg.Database.MemoryMaxBatches), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pg := store.NewPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("connected to database", "max_conns", cfg.Database.MaxConns)
	return pg, pool.Close, nil
}
