// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

// TitleChecker verifies that a parent title exists. Satisfied by the
// catalog title repository.
type TitleChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service implements the review lifecycle under a parent title.
type Service struct {
	repo   Repository
	titles TitleChecker
}

// NewService creates the review service.
func NewService(repo Repository, titles TitleChecker) *Service {
	return &Service{repo: repo, titles: titles}
}

// # Inputs

// CreateInput is the request body for POST /titles/{id}/reviews.
type CreateInput struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// UpdateInput carries partial updates to a review.
type UpdateInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// # Operations

// List returns a page of a title's reviews; the title must exist.
func (service *Service) List(ctx context.Context, titleID int64, params pagination.Params) ([]*Review, int, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(ctx, titleID, params)
}

// Get retrieves a single review under a title.
func (service *Service) Get(ctx context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, titleID, reviewID)
}

/*
Create adds the caller's review of a title. Each user gets one review per
title; a second attempt is a conflict regardless of its content.
*/
func (service *Service) Create(ctx context.Context, titleID int64, claims *sec.AuthClaims, input CreateInput) (*Review, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	err := validate.New().
		Required(FieldText, input.Text).
		Range(FieldScore, input.Score, MinScore, MaxScore).
		Err()
	if err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := service.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update edits a review's text or score. Only the author, a moderator, or
// an admin may do so.
func (service *Service) Update(ctx context.Context, titleID, reviewID int64, claims *sec.AuthClaims, input UpdateInput) (*Review, error) {
	review, err := service.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorizeChange(claims, review.AuthorID); err != nil {
		return nil, err
	}

	review.Text = pointer.Fallback(input.Text, review.Text)
	review.Score = pointer.Fallback(input.Score, review.Score)

	err = validate.New().
		Required(FieldText, review.Text).
		Range(FieldScore, review.Score, MinScore, MaxScore).
		Err()
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review under the same ownership rules as Update.
func (service *Service) Delete(ctx context.Context, titleID, reviewID int64, claims *sec.AuthClaims) error {
	review, err := service.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorizeChange(claims, review.AuthorID); err != nil {
		return err
	}
	return service.repo.Delete(ctx, review.ID)
}

// # Internals

func (service *Service) requireTitle(ctx context.Context, titleID int64) error {
	exists, err := service.titles.ExistsByID(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// authorizeChange grants mutation to the author and to anyone holding at
// least the moderator role.
func authorizeChange(claims *sec.AuthClaims, authorID string) error {
	if claims.UserID == authorID || sec.UserRole(claims.Role).AtLeast(sec.RoleModerator) {
		return nil
	}
	return apperr.Forbidden("You are not the author of this review")
}
