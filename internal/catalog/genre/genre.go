// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the genre taxonomy of the catalog.

Unlike categories, a title may carry any number of genres through the
catalog.title_genre join table. Deleting a genre detaches it from titles
via the join table's cascade.
*/
package genre

import (
	"context"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Genre is a catalog tag addressed by its slug.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field identifiers used in validation messages.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Field limits mirror the database schema.
const (
	MaxNameLength = 256
	MaxSlugLength = 50
)

// Repository defines persistence operations for genres.
type Repository interface {
	List(ctx context.Context, search string, params pagination.Params) ([]*Genre, int, error)
	FindBySlug(ctx context.Context, slug string) (*Genre, error)
	Create(ctx context.Context, genre *Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}
