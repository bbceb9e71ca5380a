// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hyoka/internal/platform/middleware"
	requestutil "github.com/taibuivan/hyoka/internal/platform/request"
	"github.com/taibuivan/hyoka/internal/platform/respond"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Handler exposes category management over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the category HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /categories. Reads are open; writes are
// admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.List)
	router.Get("/{slug}", handler.Get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.Create)
		r.Delete("/{slug}", handler.Delete)
	})
	return router
}

// List handles GET /categories.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, categories, pagination.NewMeta(params, total))
}

// Get handles GET /categories/{slug}.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.Get(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

// Create handles POST /categories.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

// Delete handles DELETE /categories/{slug}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
