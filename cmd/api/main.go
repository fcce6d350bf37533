// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Critique HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taibuivan/critique/internal/api"
	"github.com/taibuivan/critique/internal/blog/post"
	"github.com/taibuivan/critique/internal/catalog/reference"
	"github.com/taibuivan/critique/internal/catalog/title"
	"github.com/taibuivan/critique/internal/platform/config"
	"github.com/taibuivan/critique/internal/platform/constants"
	"github.com/taibuivan/critique/internal/platform/mail"
	"github.com/taibuivan/critique/internal/platform/middleware"
	"github.com/taibuivan/critique/internal/platform/migration"
	pgstore "github.com/taibuivan/critique/internal/platform/postgres"
	redisstore "github.com/taibuivan/critique/internal/platform/redis"
	"github.com/taibuivan/critique/internal/platform/sec"
	"github.com/taibuivan/critique/internal/social/review"
	"github.com/taibuivan/critique/internal/users/account"
	"github.com/taibuivan/critique/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("mail_enabled", cfg.MailEnabled()),
	)

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.Run(cfg.DatabaseURL, cfg.MigrationPath, migration.Up, log), "run migrations")

	// ── 4. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: cfg.DBStatementTimeout,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize jwt service")

	codes, err := sec.NewCodeGenerator(cfg.SecretKey, cfg.ConfirmationCodeTTL)
	must(log, err, "initialize confirmation codes")

	var mailer mail.Sender = mail.NewLogSender(log)
	if cfg.MailEnabled() {
		smtpSender, err := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		must(log, err, "initialize smtp sender")
		mailer = smtpSender
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userRepository := account.NewPostgresRepository(pool)
	accountService := account.NewService(userRepository)
	authService := auth.NewService(userRepository, codes, tokens, auth.NewRedisDenylist(rdb), mailer)

	categoryService := reference.NewService(reference.Categories, reference.NewPostgresRepository(pool, reference.Categories))
	genreService := reference.NewService(reference.Genres, reference.NewPostgresRepository(pool, reference.Genres))
	titleService := title.NewService(title.NewPostgresRepository(pool), categoryService, genreService)

	reviewService := review.NewService(titleService,
		review.NewPostgresReviewRepository(pool),
		review.NewPostgresCommentRepository(pool),
	)
	postService := post.NewService(post.NewPostgresRepository(pool))

	liveness, readiness := api.NewHealthHandlers(
		api.Check{Name: "postgres", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		api.Check{Name: "redis", Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := api.NewServer(cfg, log, api.Dependencies{
		Verifier:  tokens,
		Loader:    accountService,
		Registry:  registry,
		RateLimit: middleware.NewRateLimiter(rootCtx, cfg.RateLimitRPS, cfg.RateLimitBurst),
	}, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Users:      account.NewHandler(accountService),
		Categories: reference.NewHandler(categoryService),
		Genres:     reference.NewHandler(genreService),
		Titles:     title.NewHandler(titleService),
		Reviews:    review.NewHandler(reviewService),
		Posts:      post.NewHandler(postService),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
