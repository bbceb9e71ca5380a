// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hyoka/internal/platform/middleware"
	requestutil "github.com/taibuivan/hyoka/internal/platform/request"
	"github.com/taibuivan/hyoka/internal/platform/respond"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/pkg/convert"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/query"
)

// Handler exposes the titles catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the title HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the title endpoints to an existing router so the
// caller can nest further subresources under /{titleID}. Reads are open;
// writes are admin-only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.List)
	router.Get("/{titleID}", handler.Get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.Create)
		r.Patch("/{titleID}", handler.Update)
		r.Delete("/{titleID}", handler.Delete)
	})
}

// List handles GET /titles with optional category, genre, year, and name
// filters.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		CategorySlug: values.Get("category"),
		GenreSlugs:   query.StringSlice(values.Get("genre")),
		Name:         values.Get("name"),
	}
	if raw := values.Get("year"); raw != "" {
		year := convert.ToIntD(raw, 0)
		filter.Year = &year
	}

	titles, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, titles, pagination.NewMeta(params, total))
}

// Get handles GET /titles/{titleID}.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// Create handles POST /titles.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

// Update handles PATCH /titles/{titleID}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// Delete handles DELETE /titles/{titleID}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
