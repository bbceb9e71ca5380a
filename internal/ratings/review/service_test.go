// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// # In-memory fakes

type fakeRepo struct {
	nextID  int64
	reviews map[int64]*Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, reviews: map[int64]*Review{}}
}

func (repo *fakeRepo) ListByTitle(_ context.Context, titleID int64, _ pagination.Params) ([]*Review, int, error) {
	var out []*Review
	for _, review := range repo.reviews {
		if review.TitleID == titleID {
			out = append(out, review)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, titleID, reviewID int64) (*Review, error) {
	review, ok := repo.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return review, nil
}

func (repo *fakeRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := repo.reviews[id]
	return ok, nil
}

func (repo *fakeRepo) Create(_ context.Context, review *Review) error {
	for _, existing := range repo.reviews {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	review.ID = repo.nextID
	review.PubDate = time.Now()
	repo.nextID++
	repo.reviews[review.ID] = review
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, review *Review) error {
	repo.reviews[review.ID] = review
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := repo.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(repo.reviews, id)
	return nil
}

type fakeTitles struct {
	known map[int64]bool
}

func (titles fakeTitles) ExistsByID(_ context.Context, id int64) (bool, error) {
	return titles.known[id], nil
}

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: userID, Role: string(role)}
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	service := NewService(repo, fakeTitles{known: map[int64]bool{1: true}})
	return service, repo
}

// # Create

func TestCreate_HappyPath(t *testing.T) {
	service, _ := newTestService()

	review, err := service.Create(context.Background(), 1, claimsFor("u1", sec.RoleUser), CreateInput{
		Text: "A masterpiece.", Score: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.TitleID)
	assert.Equal(t, "u1", review.AuthorID)
	assert.Equal(t, 9, review.Score)
	assert.False(t, review.PubDate.IsZero())
}

func TestCreate_MissingTitle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), 99, claimsFor("u1", sec.RoleUser), CreateInput{
		Text: "Orphan review", Score: 5,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestCreate_SecondReviewConflicts(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	author := claimsFor("u1", sec.RoleUser)

	_, err := service.Create(ctx, 1, author, CreateInput{Text: "First take", Score: 7})
	require.NoError(t, err)

	_, err = service.Create(ctx, 1, author, CreateInput{Text: "Second take", Score: 3})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

func TestCreate_ScoreOutOfRange(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for _, score := range []int{0, 11, -4} {
		_, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{
			Text: "Off the scale", Score: score,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	}
}

// # Update & Delete authorization

func TestUpdate_ByAuthor(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	author := claimsFor("u1", sec.RoleUser)

	created, err := service.Create(ctx, 1, author, CreateInput{Text: "Good", Score: 6})
	require.NoError(t, err)

	updated, err := service.Update(ctx, 1, created.ID, author, UpdateInput{Score: pointer.To(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Score)
	assert.Equal(t, "Good", updated.Text)
}

func TestUpdate_ByStrangerForbidden(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Mine", Score: 6})
	require.NoError(t, err)

	_, err = service.Update(ctx, 1, created.ID, claimsFor("u2", sec.RoleUser), UpdateInput{
		Text: pointer.To("Hijacked"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
}

func TestUpdate_ByModerator(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Spicy", Score: 2})
	require.NoError(t, err)

	updated, err := service.Update(ctx, 1, created.ID, claimsFor("mod", sec.RoleModerator), UpdateInput{
		Text: pointer.To("Toned down"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Toned down", updated.Text)
}

func TestDelete_ByAdmin(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Gone soon", Score: 5})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, 1, created.ID, claimsFor("root", sec.RoleAdmin)))
	assert.Empty(t, repo.reviews)
}

func TestDelete_ByStrangerForbidden(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{Text: "Keep out", Score: 5})
	require.NoError(t, err)

	err = service.Delete(ctx, 1, created.ID, claimsFor("u2", sec.RoleUser))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	assert.Len(t, repo.reviews, 1)
}

// # Reads

func TestList_MissingTitle(t *testing.T) {
	service, _ := newTestService()

	_, _, err := service.List(context.Background(), 99, pagination.Params{Limit: 10})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestGet_WrongTitleScope(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, fakeTitles{known: map[int64]bool{1: true, 2: true}})
	ctx := context.Background()

	created, err := service.Create(ctx, 1, claimsFor("u1", sec.RoleUser), CreateInput{Text: "On title 1", Score: 5})
	require.NoError(t, err)

	// the review exists, but not under title 2
	_, err = service.Get(ctx, 2, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
