// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api composes the HTTP surface of the Hyoka service.

It owns the router, the middleware chain, and the HTTP server lifecycle.
Domain handlers are injected; this package only decides where they mount
and which middleware wraps them.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hyoka/internal/catalog/category"
	"github.com/taibuivan/hyoka/internal/catalog/genre"
	"github.com/taibuivan/hyoka/internal/catalog/title"
	"github.com/taibuivan/hyoka/internal/platform/config"
	"github.com/taibuivan/hyoka/internal/platform/constants"
	"github.com/taibuivan/hyoka/internal/platform/middleware"
	"github.com/taibuivan/hyoka/internal/ratings/comment"
	"github.com/taibuivan/hyoka/internal/ratings/review"
	"github.com/taibuivan/hyoka/internal/users/account"
	"github.com/taibuivan/hyoka/internal/users/auth"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Auth     *auth.Handler
	Account  *account.Handler
	Category *category.Handler
	Genre    *genre.Handler
	Title    *title.Handler
	Review   *review.Handler
	Comment  *comment.Handler
}

// NewServer builds the fully wired HTTP server.
//
// Middleware order matters: request ID first so every later stage can log
// it, then logging, rate limiting, panic recovery, CORS, and finally token
// authentication. Route-level guards (RequireAuth, RequireRole) sit inside
// the individual handlers.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *http.Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Authenticate(verifier))

	router.Get("/health", handlers.Health.Liveness)
	router.Get("/ready", handlers.Health.Readiness)

	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", handlers.Auth.Routes())
		api.Mount("/users", handlers.Account.Routes())
		api.Mount("/categories", handlers.Category.Routes())
		api.Mount("/genres", handlers.Genre.Routes())

		api.Route("/titles", func(titles chi.Router) {
			handlers.Title.RegisterRoutes(titles)
			titles.Mount("/{titleID}/reviews", handlers.Review.Routes())
		})

		// Comments address their review directly, without the title prefix.
		api.Mount("/reviews", handlers.Comment.Routes())
	})

	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           http.TimeoutHandler(router, constants.GlobalRequestTimeout, `{"error":"Request timed out"}`),
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
