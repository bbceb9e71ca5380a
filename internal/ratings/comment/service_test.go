// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

type fakeRepo struct {
	nextID   int64
	comments map[int64]*Comment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, comments: map[int64]*Comment{}}
}

func (repo *fakeRepo) ListByReview(_ context.Context, reviewID int64, _ pagination.Params) ([]*Comment, int, error) {
	var out []*Comment
	for _, comment := range repo.comments {
		if comment.ReviewID == reviewID {
			out = append(out, comment)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, reviewID, commentID int64) (*Comment, error) {
	comment, ok := repo.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}

func (repo *fakeRepo) Create(_ context.Context, comment *Comment) error {
	comment.ID = repo.nextID
	comment.PubDate = time.Now()
	repo.nextID++
	repo.comments[comment.ID] = comment
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, comment *Comment) error {
	repo.comments[comment.ID] = comment
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

type fakeReviews struct {
	known map[int64]bool
}

func (reviews fakeReviews) ExistsByID(_ context.Context, id int64) (bool, error) {
	return reviews.known[id], nil
}

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: userID, Role: string(role)}
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeReviews{known: map[int64]bool{10: true}}), repo
}

func TestCreate_HappyPath(t *testing.T) {
	service, _ := newTestService()

	comment, err := service.Create(context.Background(), 10, claimsFor("u1", sec.RoleUser), CreateInput{
		Text: "Well said.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), comment.ReviewID)
	assert.Equal(t, "u1", comment.Author)
	assert.False(t, comment.PubDate.IsZero())
}

func TestCreate_MissingReview(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), 99, claimsFor("u1", sec.RoleUser), CreateInput{
		Text: "Into the void",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestCreate_EmptyText(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), 10, claimsFor("u1", sec.RoleUser), CreateInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestUpdate_OwnershipRules(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 10, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Original"})
	require.NoError(t, err)

	// stranger denied
	_, err = service.Update(ctx, 10, created.ID, claimsFor("u2", sec.RoleUser), UpdateInput{
		Text: pointer.To("Hijacked"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	// author allowed
	updated, err := service.Update(ctx, 10, created.ID, claimsFor("u1", sec.RoleUser), UpdateInput{
		Text: pointer.To("Edited"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)

	// moderator allowed
	updated, err = service.Update(ctx, 10, created.ID, claimsFor("mod", sec.RoleModerator), UpdateInput{
		Text: pointer.To("Moderated"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Text)
}

func TestDelete_OwnershipRules(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 10, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Ephemeral"})
	require.NoError(t, err)

	err = service.Delete(ctx, 10, created.ID, claimsFor("u2", sec.RoleUser))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	require.NoError(t, service.Delete(ctx, 10, created.ID, claimsFor("u1", sec.RoleUser)))
	assert.Empty(t, repo.comments)
}

func TestList_MissingReview(t *testing.T) {
	service, _ := newTestService()

	_, _, err := service.List(context.Background(), 99, pagination.Params{Limit: 10})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
