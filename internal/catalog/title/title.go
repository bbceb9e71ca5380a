// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works catalog: the titles users review.

A title belongs to at most one category and any number of genres, both
referenced by slug in API payloads. Its rating is not stored: it is the
mean review score computed at read time, null until the first review
arrives.
*/
package title

import (
	"context"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// # Entities

// Title is a reviewable work in the catalog.
type Title struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`

	Category *CategoryRef `json:"category"`
	Genres   []GenreRef   `json:"genre"`
}

// CategoryRef is the embedded category representation in title payloads.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreRef is the embedded genre representation in title payloads.
type GenreRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field identifiers used in validation messages.
const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
)

// MaxNameLength mirrors the database schema.
const MaxNameLength = 256

// # Filtering

// Filter narrows a title listing. Zero values mean "no constraint";
// GenreSlugs requires a title to carry at least one of the given genres.
type Filter struct {
	CategorySlug string
	GenreSlugs   []string
	Year         *int
	Name         string
}

// # Repository

// Repository defines persistence operations for titles. Category and genre
// references are resolved by slug inside the store, atomically with the
// title row itself.
type Repository interface {
	// List returns a page of titles matching the filter, plus the total
	// count, each hydrated with category, genres, and rating.
	List(ctx context.Context, filter Filter, params pagination.Params) ([]*Title, int, error)

	// FindByID retrieves a single hydrated title.
	FindByID(ctx context.Context, id int64) (*Title, error)

	// ExistsByID reports whether a title exists, without hydrating it.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create persists a title and its genre links. Unknown category or
	// genre slugs are validation errors.
	Create(ctx context.Context, title *Title, categorySlug string, genreSlugs []string) error

	// Update rewrites a title's fields. A nil categorySlug or genreSlugs
	// leaves that association unchanged; an empty categorySlug clears it,
	// an empty genreSlugs slice clears all genre links.
	Update(ctx context.Context, title *Title, categorySlug *string, genreSlugs []string) error

	// DeleteByID removes a title and, through cascades, its reviews.
	DeleteByID(ctx context.Context, id int64) error
}
