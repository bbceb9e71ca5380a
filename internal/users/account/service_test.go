// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/users/auth"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

type fakeUserRepo struct {
	users map[string]*auth.User // keyed by username
}

func newFakeUserRepo(seed ...*auth.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*auth.User{}}
	for _, user := range seed {
		repo.users[user.Username] = user
	}
	return repo
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) List(_ context.Context, _ string, _ pagination.Params) ([]*auth.User, int, error) {
	var out []*auth.User
	for _, user := range repo.users {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if _, ok := repo.users[user.Username]; ok {
		return apperr.Conflict("Username is already taken")
	}
	repo.users[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.users[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := repo.users[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, username)
	return nil
}

func TestCreate_DefaultsRoleToUser(t *testing.T) {
	service := NewService(newFakeUserRepo())

	user, err := service.Create(context.Background(), CreateInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	service := NewService(newFakeUserRepo())

	_, err := service.Create(context.Background(), CreateInput{
		Username: "reader", Email: "reader@example.com", Role: "owner",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestCreate_RejectsOverlongBio(t *testing.T) {
	service := NewService(newFakeUserRepo())

	_, err := service.Create(context.Background(), CreateInput{
		Username: "reader", Email: "reader@example.com",
		Bio: strings.Repeat("x", auth.MaxBioLength+1),
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, auth.FieldBio, appErr.Details[0].Field)
}

func TestUpdateByUsername_ChangesRole(t *testing.T) {
	seed := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	service := NewService(newFakeUserRepo(seed))

	user, err := service.UpdateByUsername(context.Background(), "reader", UpdateInput{
		Role: pointer.To(string(sec.RoleModerator)),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestUpdateByUsername_UnknownUser(t *testing.T) {
	service := NewService(newFakeUserRepo())

	_, err := service.UpdateByUsername(context.Background(), "ghost", UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestUpdateMe_IgnoresRole(t *testing.T) {
	seed := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	service := NewService(newFakeUserRepo(seed))

	user, err := service.UpdateMe(context.Background(), "u1", UpdateInput{
		Bio:  pointer.To("I review things."),
		Role: pointer.To(string(sec.RoleAdmin)),
	})
	require.NoError(t, err)
	assert.Equal(t, "I review things.", user.Bio)
	assert.Equal(t, sec.RoleUser, user.Role, "role must stay read-only on the self endpoint")
}

func TestUpdateMe_PartialUpdateKeepsOtherFields(t *testing.T) {
	seed := &auth.User{
		ID: "u1", Username: "reader", Email: "reader@example.com",
		FirstName: "Ann", LastName: "Lee", Role: sec.RoleUser,
	}
	service := NewService(newFakeUserRepo(seed))

	user, err := service.UpdateMe(context.Background(), "u1", UpdateInput{
		FirstName: pointer.To("Anna"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, "Lee", user.LastName)
	assert.Equal(t, "reader@example.com", user.Email)
}

func TestUpdateMe_RejectsOverlongBio(t *testing.T) {
	seed := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	service := NewService(newFakeUserRepo(seed))

	_, err := service.UpdateMe(context.Background(), "u1", UpdateInput{
		Bio: pointer.To(strings.Repeat("x", auth.MaxBioLength+1)),
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, auth.FieldBio, appErr.Details[0].Field)
}

func TestUpdateMe_RejectsBadEmail(t *testing.T) {
	seed := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	service := NewService(newFakeUserRepo(seed))

	_, err := service.UpdateMe(context.Background(), "u1", UpdateInput{
		Email: pointer.To("not-an-email"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestDeleteByUsername(t *testing.T) {
	seed := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo := newFakeUserRepo(seed)
	service := NewService(repo)

	require.NoError(t, service.DeleteByUsername(context.Background(), "reader"))
	assert.Empty(t, repo.users)

	err := service.DeleteByUsername(context.Background(), "reader")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
