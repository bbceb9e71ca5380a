// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hyoka/internal/platform/middleware"
	requestutil "github.com/taibuivan/hyoka/internal/platform/request"
	"github.com/taibuivan/hyoka/internal/platform/respond"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Handler exposes reviews nested under /titles/{titleID}/reviews.
type Handler struct {
	service *Service
}

// NewHandler creates the review HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the nested review router. The titleID parameter is
// inherited from the parent route. Reads are open; writes require auth,
// with ownership enforced in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.List)
	router.Get("/{reviewID}", handler.Get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.Create)
		r.Patch("/{reviewID}", handler.Update)
		r.Delete("/{reviewID}", handler.Delete)
	})
	return router
}

// List handles GET /titles/{titleID}/reviews.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(params, total))
}

// Get handles GET /titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

// Create handles POST /titles/{titleID}/reviews.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), titleID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

// Update handles PATCH /titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), titleID, reviewID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

// Delete handles DELETE /titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID, reviewID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func pathIDs(request *http.Request) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
