// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hyoka/internal/platform/middleware"
	requestutil "github.com/taibuivan/hyoka/internal/platform/request"
	"github.com/taibuivan/hyoka/internal/platform/respond"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Handler exposes comments nested under /reviews/{reviewID}/comments.
type Handler struct {
	service *Service
}

// NewHandler creates the comment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /reviews, which exists solely to host the
// comment subresource. Reads are open; writes require auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Route("/{reviewID}/comments", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Get("/{commentID}", handler.Get)

		r.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Post("/", handler.Create)
			protected.Patch("/{commentID}", handler.Update)
			protected.Delete("/{commentID}", handler.Delete)
		})
	})
	return router
}

// List handles GET /reviews/{reviewID}/comments.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comments, pagination.NewMeta(params, total))
}

// Get handles GET /reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

// Create handles POST /reviews/{reviewID}/comments.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID", "Review")
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

	comment, err := handler.service.Create(request.Context(), reviewID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

// Update handles PATCH /reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	reviewID, commentID, err := pathIDs(request)
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

	comment, err := handler.service.Update(request.Context(), reviewID, commentID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

// Delete handles DELETE /reviews/{reviewID}/comments/{commentID}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func pathIDs(request *http.Request) (reviewID, commentID int64, err error) {
	reviewID, err = requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}
	commentID, err = requestutil.IntParam(request, "commentID", "Comment")
	if err != nil {
		return 0, 0, err
	}
	return reviewID, commentID, nil
}
