// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Encore booking API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from .env and environment variables.
//  3. Open the record store (PostgreSQL + migrations, or in-memory).
//  4. Connect to Redis when REDIS_URL is set (Idempotency-Key guard).
//  5. Load the editor token public key when JWT_PUBLIC_KEY_PATH is set.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/encore/internal/api"
	"github.com/taibuivan/encore/internal/platform/config"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/database/schema"
	"github.com/taibuivan/encore/internal/platform/memstore"
	"github.com/taibuivan/encore/internal/platform/migration"
	pgstore "github.com/taibuivan/encore/internal/platform/postgres"
	redisstore "github.com/taibuivan/encore/internal/platform/redis"
	"github.com/taibuivan/encore/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("auth_enabled", cfg.AuthEnabled()),
		slog.Bool("idempotency_enabled", cfg.IdempotencyEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var checks []api.HealthCheck

	// ── 3. Record Store ───────────────────────────────────────────────────
	var stores api.Stores
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		stores = api.PostgresStores(pool)
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		}})

	case config.DriverMemory:
		log.Warn("using in-memory record store; data is lost on restart")
		stores = api.MemoryStores(memstore.New(schema.Tables()...))
	}

	guards := api.Guards{IdempotencyTTL: cfg.IdempotencyTTL}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	if cfg.IdempotencyEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		guards.Keys = redisstore.NewIdempotencyStore(rdb)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}})
	}

	// ── 5. Editor Tokens ──────────────────────────────────────────────────
	if cfg.AuthEnabled() {
		verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "load editor token key")
		guards.Verifier = verifier
	} else if cfg.IsProduction() {
		log.Warn("write routes are open: JWT_PUBLIC_KEY_PATH is not set")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	handlers := api.NewDomainHandlers(stores, log, func() time.Time { return time.Now().UTC() })
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, guards, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
