// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Chronomap HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the event store (PostgreSQL + migrations, or a REST endpoint).
//  4. Load the event set once; a failure leaves an empty set and a notice.
//  5. Build the catalog (timeline blocks, period presets, display locale).
//  6. Connect to Redis for sessions, or keep them in memory.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/chronomap/internal/api"
	"github.com/taibuivan/chronomap/internal/core/catalog"
	"github.com/taibuivan/chronomap/internal/core/chrono"
	"github.com/taibuivan/chronomap/internal/core/draft"
	"github.com/taibuivan/chronomap/internal/core/event"
	"github.com/taibuivan/chronomap/internal/core/search"
	"github.com/taibuivan/chronomap/internal/core/selection"
	"github.com/taibuivan/chronomap/internal/core/timeline"
	"github.com/taibuivan/chronomap/internal/core/video"
	"github.com/taibuivan/chronomap/internal/platform/config"
	"github.com/taibuivan/chronomap/internal/platform/constants"
	"github.com/taibuivan/chronomap/internal/platform/migration"
	pgstore "github.com/taibuivan/chronomap/internal/platform/postgres"
	redisstore "github.com/taibuivan/chronomap/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("data_source", cfg.DataSource),
	)

	// Root context for background work; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Event Store ────────────────────────────────────────────────────
	var (
		pool       *pgxpool.Pool
		repository event.Repository
	)

	if cfg.UsesPostgres() {
		repository, pool = openPostgres(startupCtx, cfg, log)
		if pool != nil {
			defer func() {
				log.Info("closing postgres pool")
				pool.Close()
			}()
		}
	} else {
		repository = event.NewRestRepository(cfg.RestURL, cfg.RestKey, &http.Client{Timeout: constants.EventLoadTimeout})
	}

	// ── 4. Event Set ──────────────────────────────────────────────────────
	// Loaded once; a failure is surfaced as a notice and the service runs
	// with an empty set.
	loadCtx, loadCancel := context.WithTimeout(startupCtx, constants.EventLoadTimeout)
	snapshot := event.NewService(repository, log).LoadSnapshot(loadCtx)
	loadCancel()

	// ── 5. Catalog ────────────────────────────────────────────────────────
	blocks, err := timeline.DefaultBlocks()
	must(log, err, "load timeline blocks")

	presets, err := search.DefaultPresets()
	must(log, err, "load period presets")

	cat := catalog.New(catalog.Options{
		Events:  snapshot.Events,
		Blocks:  blocks,
		Presets: presets,
		Locale:  chrono.NewLocale(cfg.DisplayLocale),
		Notice:  snapshot.Notice,
	})

	log.Info("catalog_ready",
		slog.Int("events", cat.Len()),
		slog.Int("blocks", len(cat.Timeline().Blocks())),
		slog.String("locale", cat.Locale().Tag().String()),
	)

	// ── 6. Session Store ──────────────────────────────────────────────────
	var (
		rdb      *redis.Client
		sessions selection.Store
	)

	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		sessions = selection.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		log.Info("session_store_in_memory")
		sessions = selection.NewMemoryStore(cfg.SessionTTL)
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	dependencies := api.HealthDependencies{EventCount: cat.Len}
	if pool != nil {
		dependencies.CheckDatabase = func(context context.Context) error {
			return pgstore.Ping(context, pool)
		}
	}
	if rdb != nil {
		dependencies.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(cat),
		Selection: selection.NewHandler(cat, sessions),
		Video:     video.NewHandler(),
		Draft:     draft.NewHandler(),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	rootCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON root logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "chronomap"))
}

// openPostgres connects the pool and applies migrations. A failure does not
// stop the process: the returned repository reports it on the first read and
// the pool is nil, so readiness skips the database check.
func openPostgres(context context.Context, cfg *config.Config, log *slog.Logger) (event.Repository, *pgxpool.Pool) {
	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("postgres_unavailable", slog.Any("error", err))
		return event.Unavailable(err), nil
	}

	if cfg.RunMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			log.Error("migrations_failed", slog.Any("error", err))
			pool.Close()
			return event.Unavailable(err), nil
		}
	}

	return event.NewPostgresRepository(pool), pool
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
