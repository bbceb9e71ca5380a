// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/slug"
)

// Service implements category management.
type Service struct {
	repo Repository
}

// NewService creates the category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the request body for POST /categories. Slug is optional;
// when omitted it is derived from the name.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// List returns a page of categories, optionally filtered by name substring.
func (service *Service) List(ctx context.Context, search string, params pagination.Params) ([]*Category, int, error) {
	return service.repo.List(ctx, search, params)
}

// Get retrieves a category by slug.
func (service *Service) Get(ctx context.Context, categorySlug string) (*Category, error) {
	return service.repo.FindBySlug(ctx, categorySlug)
}

/*
Create adds a new category. The slug defaults to a normalized form of the
name and must match the slug grammar either way.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Category, error) {
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

	category := &Category{Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by slug.
func (service *Service) Delete(ctx context.Context, categorySlug string) error {
	return service.repo.DeleteBySlug(ctx, categorySlug)
}
