// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements discussion threads under reviews.

Comments follow the same ownership rules as the reviews they hang off:
anyone may read them, the author controls their own, and moderators and
admins may edit or remove any comment.
*/
package comment

import (
	"context"
	"time"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// FieldText is the only validated input field.
const FieldText = "text"

// Repository defines persistence operations for comments.
type Repository interface {
	// ListByReview returns a page of a review's comments plus the total count.
	ListByReview(ctx context.Context, reviewID int64, params pagination.Params) ([]*Comment, int, error)

	// FindByID retrieves a comment scoped to its review.
	FindByID(ctx context.Context, reviewID, commentID int64) (*Comment, error)

	// Create persists a new comment.
	Create(ctx context.Context, comment *Comment) error

	// Update persists changes to a comment's text.
	Update(ctx context.Context, comment *Comment) error

	// Delete removes a comment.
	Delete(ctx context.Context, id int64) error
}
