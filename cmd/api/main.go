// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Hyoka HTTP server.
//
// Startup order: logger, configuration, PostgreSQL, Redis, migrations,
// token keys, mailer, then the wired router. Any failure before the
// listener opens is fatal.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/hyoka/internal/api"
	"github.com/taibuivan/hyoka/internal/catalog/category"
	"github.com/taibuivan/hyoka/internal/catalog/genre"
	"github.com/taibuivan/hyoka/internal/catalog/title"
	"github.com/taibuivan/hyoka/internal/platform/config"
	"github.com/taibuivan/hyoka/internal/platform/constants"
	"github.com/taibuivan/hyoka/internal/platform/mailer"
	"github.com/taibuivan/hyoka/internal/platform/migration"
	"github.com/taibuivan/hyoka/internal/platform/postgres"
	"github.com/taibuivan/hyoka/internal/platform/redis"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/ratings/comment"
	"github.com/taibuivan/hyoka/internal/ratings/review"
	"github.com/taibuivan/hyoka/internal/users/account"
	"github.com/taibuivan/hyoka/internal/users/auth"
)

func main() {
	logger := newLogger(false)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	must(logger, "load configuration", err)

	if cfg.Debug {
		logger = newLogger(true)
		slog.SetDefault(logger)
		logger.Debug("debug logging enabled")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	must(logger, "connect to postgres", err)
	defer pool.Close()

	cache, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	must(logger, "connect to redis", err)
	defer cache.Close()

	must(logger, "run migrations", migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger))

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(logger, "load token keys", err)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}, logger)
	} else {
		logger.Warn("SMTP_HOST not set, confirmation codes will be logged instead of mailed")
		mail = mailer.NewLogMailer(logger)
	}

	// Repositories
	userRepo := auth.NewPostgresUserRepository(pool)
	codeRepo := auth.NewRedisCodeRepository(cache)
	categoryRepo := category.NewPostgresRepository(pool)
	genreRepo := genre.NewPostgresRepository(pool)
	titleRepo := title.NewPostgresRepository(pool)
	reviewRepo := review.NewPostgresRepository(pool)
	commentRepo := comment.NewPostgresRepository(pool)

	// Services and handlers
	handlers := api.Handlers{
		Health:   api.NewHealthHandler(pool, cache),
		Auth:     auth.NewHandler(auth.NewService(userRepo, codeRepo, tokens, mail)),
		Account:  account.NewHandler(account.NewService(userRepo)),
		Category: category.NewHandler(category.NewService(categoryRepo)),
		Genre:    genre.NewHandler(genre.NewService(genreRepo)),
		Title:    title.NewHandler(title.NewService(titleRepo)),
		Review:   review.NewHandler(review.NewService(reviewRepo, titleRepo)),
		Comment:  comment.NewHandler(comment.NewService(commentRepo, reviewRepo)),
	}

	server := api.NewServer(ctx, cfg, logger, tokens, handlers)

	go func() {
		logger.Info("server listening",
			"addr", server.Addr,
			"env", cfg.Environment,
			"version", constants.AppVersion,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}

// newLogger builds the process-wide JSON logger. Debug mode lowers the
// threshold so per-request diagnostics reach the output.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// must aborts startup on an unrecoverable initialization error.
func must(logger *slog.Logger, step string, err error) {
	if err != nil {
		logger.Error("startup failed", "step", step, "error", err)
		os.Exit(1)
	}
}
