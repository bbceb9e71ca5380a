// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/pkg/pagination"
)

type fakeRepo struct {
	nextID     int64
	categories map[string]*Category // keyed by slug
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, categories: map[string]*Category{}}
}

func (repo *fakeRepo) List(_ context.Context, _ string, _ pagination.Params) ([]*Category, int, error) {
	var out []*Category
	for _, category := range repo.categories {
		out = append(out, category)
	}
	return out, len(out), nil
}

func (repo *fakeRepo) FindBySlug(_ context.Context, slug string) (*Category, error) {
	if category, ok := repo.categories[slug]; ok {
		return category, nil
	}
	return nil, apperr.NotFound("Category")
}

func (repo *fakeRepo) Create(_ context.Context, category *Category) error {
	if _, ok := repo.categories[category.Slug]; ok {
		return apperr.Conflict("Category already exists")
	}
	category.ID = repo.nextID
	repo.nextID++
	repo.categories[category.Slug] = category
	return nil
}

func (repo *fakeRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := repo.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(repo.categories, slug)
	return nil
}

func TestCreate_DerivesSlugFromName(t *testing.T) {
	service := NewService(newFakeRepo())

	category, err := service.Create(context.Background(), CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
}

func TestCreate_KeepsExplicitSlug(t *testing.T) {
	service := NewService(newFakeRepo())

	category, err := service.Create(context.Background(), CreateInput{Name: "Movies", Slug: "films"})
	require.NoError(t, err)
	assert.Equal(t, "films", category.Slug)
}

func TestCreate_RejectsBadSlug(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Create(context.Background(), CreateInput{Name: "Movies", Slug: "Not A Slug"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, CreateInput{Name: "Movies"})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreateInput{Name: "Movies"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

func TestDelete_UnknownSlug(t *testing.T) {
	service := NewService(newFakeRepo())

	err := service.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
