// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the category taxonomy of the catalog.

A category is a coarse classification a title belongs to (e.g. "Movies",
"Books"). Each title references at most one category; deleting a category
detaches its titles rather than deleting them.

Slugs are the public identifiers: all lookups and deletions address a
category by slug, never by numeric ID.
*/
package category

import (
	"context"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Category is a catalog classification addressed by its slug.
type Category struct {
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

// Repository defines persistence operations for categories.
type Repository interface {
	// List returns a page of categories plus the total count. When search
	// is non-empty it filters by name substring.
	List(ctx context.Context, search string, params pagination.Params) ([]*Category, int, error)

	// FindBySlug retrieves a single category.
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// Create persists a new category; name and slug must both be unique.
	Create(ctx context.Context, category *Category) error

	// DeleteBySlug removes a category. Titles referencing it keep existing
	// with a null category.
	DeleteBySlug(ctx context.Context, slug string) error
}
