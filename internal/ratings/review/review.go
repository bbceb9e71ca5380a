// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements title reviews: authored texts with a 1-10 score.

Each user may review a title exactly once; the pair is unique at the
database level so concurrent submissions cannot slip a duplicate through.
A review's author keeps full control of it, and moderators and admins may
edit or remove any review.
*/
package review

import (
	"context"
	"time"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Review is a scored opinion on a title.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Field identifiers used in validation messages.
const (
	FieldText  = "text"
	FieldScore = "score"
)

// Score bounds; the database CHECK mirrors them.
const (
	MinScore = 1
	MaxScore = 10
)

// Repository defines persistence operations for reviews. Reviews are
// always addressed within their parent title.
type Repository interface {
	// ListByTitle returns a page of a title's reviews plus the total count.
	ListByTitle(ctx context.Context, titleID int64, params pagination.Params) ([]*Review, int, error)

	// FindByID retrieves a review scoped to its title.
	FindByID(ctx context.Context, titleID, reviewID int64) (*Review, error)

	// ExistsByID reports whether a review exists, independent of its title.
	// The comment subresource uses it to validate its parent.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create persists a new review. A second review by the same author on
	// the same title is a conflict.
	Create(ctx context.Context, review *Review) error

	// Update persists changes to text and score.
	Update(ctx context.Context, review *Review) error

	// Delete removes a review and, through cascade, its comments.
	Delete(ctx context.Context, id int64) error
}
