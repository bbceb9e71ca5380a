// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

// Service implements catalog title management.
type Service struct {
	repo Repository
}

// NewService creates the title service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Inputs

// CreateInput is the request body for POST /titles. Category and genres
// are referenced by slug.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateInput carries partial updates; nil fields are left untouched. An
// explicit empty Category clears the association, an explicit empty Genres
// list clears all genre links.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// # Operations

// List returns a page of titles under the given filter.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error) {
	return service.repo.List(ctx, filter, params)
}

// Get retrieves a single title with its rating and associations.
func (service *Service) Get(ctx context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(ctx, id)
}

/*
Create adds a title to the catalog. The year must not lie in the future;
category and genre slugs must already exist.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Title, error) {
	err := validate.New().
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		PastOrPresentYear(FieldYear, input.Year).
		Err()
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if err := service.repo.Create(ctx, title, input.Category, input.Genres); err != nil {
		return nil, err
	}
	return title, nil
}

// Update applies a partial update and returns the re-hydrated title.
func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title.Name = pointer.Fallback(input.Name, title.Name)
	title.Year = pointer.Fallback(input.Year, title.Year)
	if input.Description != nil {
		title.Description = input.Description
	}

	err = validate.New().
		Required(FieldName, title.Name).
		MaxLen(FieldName, title.Name, MaxNameLength).
		PastOrPresentYear(FieldYear, title.Year).
		Err()
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, title, input.Category, input.Genres); err != nil {
		return nil, err
	}
	return title, nil
}

// Delete removes a title and its reviews.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.repo.DeleteByID(ctx, id)
}
