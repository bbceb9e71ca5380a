// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/constants"
	"github.com/taibuivan/hyoka/internal/platform/postgres"
	"github.com/taibuivan/hyoka/internal/platform/redis"
	"github.com/taibuivan/hyoka/internal/platform/respond"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db    *pgxpool.Pool
	cache *goredis.Client
}

// NewHealthHandler creates the health probe handler.
func NewHealthHandler(db *pgxpool.Pool, cache *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness handles GET /health. It only proves the process is serving.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		"status":  "ok",
		"service": constants.AppName,
		"version": constants.AppVersion,
	})
}

// Readiness handles GET /ready. It pings both backing stores and reports
// 503 with the failing dependency when either is unreachable.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := postgres.Ping(ctx, handler.db); err != nil {
		respond.Error(writer, request, apperr.ServiceUnavailable("Database is unreachable"))
		return
	}
	if err := redis.Ping(ctx, handler.cache); err != nil {
		respond.Error(writer, request, apperr.ServiceUnavailable("Cache is unreachable"))
		return
	}

	respond.OK(writer, map[string]string{"status": "ready"})
}
