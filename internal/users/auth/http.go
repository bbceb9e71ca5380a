// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hyoka/internal/platform/request"
	"github.com/taibuivan/hyoka/internal/platform/respond"
)

// Handler exposes the auth flows over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /auth. Both endpoints are anonymous.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/signup", handler.Signup)
	router.Post("/token", handler.Token)
	return router
}

// Signup handles POST /auth/signup.
//
// Responds 200 with the echoed (username, email) pair; the confirmation
// code travels only by email.
func (handler *Handler) Signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, SignupInput{Username: user.Username, Email: user.Email})
}

// Token handles POST /auth/token, exchanging a confirmation code for a
// bearer token. Responds 201 on success.
func (handler *Handler) Token(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.IssueToken(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, token)
}
