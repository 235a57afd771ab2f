// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the dexview catalog viewer.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Select the settings backend (Redis, PostgreSQL or memory).
//  4. Run database migrations when PostgreSQL is used (idempotent).
//  5. Build the remote gateway, the enricher and the renderer.
//  6. Wire the session manager and HTTP handlers.
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

	"github.com/taibuivan/dexview/internal/api"
	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/platform/config"
	"github.com/taibuivan/dexview/internal/platform/constants"
	"github.com/taibuivan/dexview/internal/platform/migration"
	pgstore "github.com/taibuivan/dexview/internal/platform/postgres"
	redisstore "github.com/taibuivan/dexview/internal/platform/redis"
	"github.com/taibuivan/dexview/internal/platform/sec"
	"github.com/taibuivan/dexview/internal/remote"
	"github.com/taibuivan/dexview/internal/session"
	"github.com/taibuivan/dexview/internal/settings"
	"github.com/taibuivan/dexview/internal/view"
)

// descriptionPlaceholder is shown when no flavor text exists in either language.
const descriptionPlaceholder = "No description available."

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("remote_base_url", cfg.RemoteBaseURL),
	)

	// Root context for background work. Cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Settings Backend ───────────────────────────────────────────────
	var (
		repository settings.Repository
		health     api.HealthDependencies
	)

	switch {
	case cfg.RedisURL != "":
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		repository = settings.NewRedisRepository(rdb, constants.SettingsTTL)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }

	case cfg.DatabaseURL != "":
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		// ── 4. Migrations ─────────────────────────────────────────────────
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repository = settings.NewPostgresRepository(pool)
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	default:
		level := slog.LevelWarn
		if cfg.IsDevelopment() {
			level = slog.LevelInfo
		}
		log.Log(startupCtx, level, "settings_backend_memory", slog.String("reason", "neither REDIS_URL nor DATABASE_URL is set"))
		repository = settings.NewMemoryRepository()
	}

	preferences := settings.NewService(repository, log)

	// ── 5. Remote Gateway & Presentation ──────────────────────────────────
	client, err := remote.NewClient(remote.Options{
		BaseURL:   cfg.RemoteBaseURL,
		Timeout:   cfg.RemoteTimeout,
		RateLimit: cfg.RemoteRateLimit,
		RateBurst: cfg.RemoteRateBurst,
	}, log)
	must(log, err, "initialize remote client")

	renderer, err := view.NewRenderer(cfg.SpriteBaseURL)
	must(log, err, "initialize renderer")

	visitorTokens, err := sec.NewVisitorTokens(cfg.SessionSecret, constants.VisitorIssuer)
	must(log, err, "initialize visitor tokens")

	// ── 6. Session Wiring ─────────────────────────────────────────────────
	manager := session.NewManager(rootCtx, &session.Dependencies{
		Gateway:     client,
		Enricher:    catalog.NewEnricher(client, cfg.EnrichConcurrency, log),
		Preferences: preferences,
		Languages: session.Languages{
			Preferred:   cfg.DescriptionLanguage,
			Fallback:    cfg.FallbackLanguage,
			Placeholder: descriptionPlaceholder,
		},
		RemoteBaseURL: client.BaseURL(),
		Logger:        log,
	}, cfg.SessionIdleTTL, cfg.SessionMax)

	go manager.Run(rootCtx, constants.SessionSweepInterval)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Viewer:    session.NewHandler(manager, renderer),
	}

	server := api.NewServer(rootCtx, cfg, log, visitorTokens, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	shutdownErr := server.Shutdown(shutdownTimeout)

	// Stop background pipelines before the settings backend closes.
	rootCancel()
	manager.Shutdown()

	if shutdownErr != nil {
		log.Error("shutdown_failed", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
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
