// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Gravadora back-office HTTP API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) in the business time zone.
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Configure object storage, when a bucket is set.
//  7. Wire the auth provider, profile resolver and domain handlers.
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

	"github.com/taibuivan/gravadora/internal/api"
	"github.com/taibuivan/gravadora/internal/catalog/artist"
	"github.com/taibuivan/gravadora/internal/catalog/budget"
	"github.com/taibuivan/gravadora/internal/catalog/document"
	"github.com/taibuivan/gravadora/internal/catalog/payment"
	"github.com/taibuivan/gravadora/internal/catalog/project"
	"github.com/taibuivan/gravadora/internal/catalog/release"
	"github.com/taibuivan/gravadora/internal/dashboard"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/config"
	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/metrics"
	"github.com/taibuivan/gravadora/internal/platform/migration"
	pgstore "github.com/taibuivan/gravadora/internal/platform/postgres"
	redisstore "github.com/taibuivan/gravadora/internal/platform/redis"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/platform/storage"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/internal/users"
)

func main() {
	// 1. Logger
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// 2. Configuration
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("timezone", cfg.Timezone),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
	)

	if cfg.DefaultRole() == sec.RoleAdmin {
		log.Warn("profile_default_role_admin",
			slog.String("hint", "every new sign-in is provisioned as admin; set PROFILE_DEFAULT_ROLE to narrow it"))
	}

	// Root context for background work; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.Timezone, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// 5. Migrations
	must(log, migration.Up(rootCtx, cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// 6. Object storage
	var (
		objects      document.Storage
		checkStorage func(ctx context.Context) error
	)
	if cfg.StorageEnabled() {
		bucket, err := storage.NewS3(startupCtx, storage.Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, log)
		must(log, err, "configure object storage")
		objects = bucket
		checkStorage = bucket.Ping
	} else {
		log.Warn("object_storage_disabled", slog.String("hint", "set S3_BUCKET to enable /documentos uploads"))
	}

	// 7. Metrics and health
	telemetry := metrics.New()
	telemetry.RegisterPool(pool)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		CheckStorage:  checkStorage,
	}, log)

	// 8. Auth provider and profiles
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	identityService := identity.NewService(
		identity.NewAccountRepository(pool),
		identity.NewSessionRepository(rdb),
		identity.NewEventBus(rdb, log),
		tokens,
		log,
	)

	profileRepository := profile.NewPostgresRepository(pool)
	resolver := profile.NewResolver(profileRepository, cfg.DefaultRole(), cfg.ProfileCacheTTL, log)
	profileService := profile.NewService(profileRepository, resolver)

	// 9. Domain wiring
	location := cfg.Location()

	dashboardService := dashboard.NewService(dashboard.NewPostgresSource(pool), telemetry, location, cfg.DashboardFanoutLimit, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Identity:  identity.NewHandler(identityService, log),
		Users:     users.NewHandler(identityService, profileService, log),
		Dashboard: dashboard.NewHandler(dashboardService),
		Artists:   artist.NewHandler(artist.NewService(artist.NewPostgresRepository(pool), log)),
		Projects:  project.NewHandler(project.NewService(project.NewPostgresRepository(pool), log)),
		Budgets:   budget.NewHandler(budget.NewService(budget.NewPostgresRepository(pool), log)),
		Payments:  payment.NewHandler(payment.NewService(payment.NewPostgresRepository(pool), location, log)),
		Releases:  release.NewHandler(release.NewService(release.NewPostgresRepository(pool), log)),
		Documents: document.NewHandler(document.NewService(document.NewPostgresRepository(pool), objects, log)),
	}

	auth := api.Auth{Verifier: identityService, Resolver: resolver}
	server := api.NewServer(rootCtx, cfg, log, auth, telemetry, handlers)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. After startup every error is returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
