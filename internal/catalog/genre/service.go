// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/slug"
)

// Service implements genre management.
type Service struct {
	repo Repository
}

// NewService creates the genre service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the request body for POST /genres. Slug is optional;
// when omitted it is derived from the name.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// List returns a page of genres, optionally filtered by name substring.
func (service *Service) List(ctx context.Context, search string, params pagination.Params) ([]*Genre, int, error) {
	return service.repo.List(ctx, search, params)
}

// Get retrieves a genre by slug.
func (service *Service) Get(ctx context.Context, genreSlug string) (*Genre, error) {
	return service.repo.FindBySlug(ctx, genreSlug)
}

// Create adds a new genre, deriving the slug from the name when omitted.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Genre, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	err := validate.New().
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLength).
		Slug(FieldSlug, input.Slug).
		Err()
	if err != nil {
		return nil, err
	}

	genre := &Genre{Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// Delete removes a genre by slug.
func (service *Service) Delete(ctx context.Context, genreSlug string) error {
	return service.repo.DeleteBySlug(ctx, genreSlug)
}
