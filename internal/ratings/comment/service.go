// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

// ReviewChecker verifies that a parent review exists. Satisfied by the
// review repository.
type ReviewChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service implements the comment lifecycle under a parent review.
type Service struct {
	repo    Repository
	reviews ReviewChecker
}

// NewService creates the comment service.
func NewService(repo Repository, reviews ReviewChecker) *Service {
	return &Service{repo: repo, reviews: reviews}
}

// # Inputs

// CreateInput is the request body for POST /reviews/{id}/comments.
type CreateInput struct {
	Text string `json:"text"`
}

// UpdateInput carries a partial update to a comment.
type UpdateInput struct {
	Text *string `json:"text"`
}

// # Operations

// List returns a page of a review's comments; the review must exist.
func (service *Service) List(ctx context.Context, reviewID int64, params pagination.Params) ([]*Comment, int, error) {
	if err := service.requireReview(ctx, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(ctx, reviewID, params)
}

// Get retrieves a single comment under a review.
func (service *Service) Get(ctx context.Context, reviewID, commentID int64) (*Comment, error) {
	if err := service.requireReview(ctx, reviewID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, reviewID, commentID)
}

// Create adds the caller's comment to a review.
func (service *Service) Create(ctx context.Context, reviewID int64, claims *sec.AuthClaims, input CreateInput) (*Comment, error) {
	if err := service.requireReview(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := validate.New().Required(FieldText, input.Text).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
	}
	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits a comment's text. Only the author, a moderator, or an admin
// may do so.
func (service *Service) Update(ctx context.Context, reviewID, commentID int64, claims *sec.AuthClaims, input UpdateInput) (*Comment, error) {
	comment, err := service.Get(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeChange(claims, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = pointer.Fallback(input.Text, comment.Text)
	if err := validate.New().Required(FieldText, comment.Text).Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment under the same ownership rules as Update.
func (service *Service) Delete(ctx context.Context, reviewID, commentID int64, claims *sec.AuthClaims) error {
	comment, err := service.Get(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorizeChange(claims, comment.AuthorID); err != nil {
		return err
	}
	return service.repo.Delete(ctx, comment.ID)
}

// # Internals

func (service *Service) requireReview(ctx context.Context, reviewID int64) error {
	exists, err := service.reviews.ExistsByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}

func authorizeChange(claims *sec.AuthClaims, authorID string) error {
	if claims.UserID == authorID || sec.UserRole(claims.Role).AtLeast(sec.RoleModerator) {
		return nil
	}
	return apperr.Forbidden("You are not the author of this comment")
}
