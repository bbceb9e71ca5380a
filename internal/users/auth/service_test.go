// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

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
)

// # In-memory fakes

type fakeUserRepo struct {
	users map[string]*User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	for _, user := range repo.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	if user, ok := repo.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) List(_ context.Context, search string, _ pagination.Params) ([]*User, int, error) {
	var out []*User
	for _, user := range repo.users {
		out = append(out, user)
	}
	return out, len(out), nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *User) error {
	if _, ok := repo.users[user.Username]; ok {
		return apperr.Conflict("Username is already taken", apperr.FieldError{
			Field: FieldUsername, Message: "Username is already taken",
		})
	}
	repo.users[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *User) error {
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

type fakeCodeRepo struct {
	hashes map[string]string // keyed by user ID
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{hashes: map[string]string{}}
}

func (repo *fakeCodeRepo) Save(_ context.Context, userID, codeHash string, _ time.Duration) error {
	repo.hashes[userID] = codeHash
	return nil
}

func (repo *fakeCodeRepo) Get(_ context.Context, userID string) (string, error) {
	hash, ok := repo.hashes[userID]
	if !ok {
		return "", ErrCodeNotFound
	}
	return hash, nil
}

func (repo *fakeCodeRepo) Delete(_ context.Context, userID string) error {
	delete(repo.hashes, userID)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "token:" + username + ":" + role, nil
}

type captureMailer struct {
	recipients []string
	bodies     []string
}

func (mailer *captureMailer) Send(_ context.Context, recipient, _, body string) error {
	mailer.recipients = append(mailer.recipients, recipient)
	mailer.bodies = append(mailer.bodies, body)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeCodeRepo, *captureMailer) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	mail := &captureMailer{}
	return NewService(users, codes, fakeTokens{}, mail), users, codes, mail
}

// # Signup

func TestSignup_CreatesUserAndMailsCode(t *testing.T) {
	service, users, codes, mail := newTestService()

	user, err := service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.Contains(t, users.users, "reader")
	assert.Contains(t, codes.hashes, user.ID)
	require.Len(t, mail.recipients, 1)
	assert.Equal(t, "reader@example.com", mail.recipients[0])
}

func TestSignup_IdempotentForSamePair(t *testing.T) {
	service, users, codes, mail := newTestService()
	ctx := context.Background()
	input := SignupInput{Username: "reader", Email: "reader@example.com"}

	first, err := service.Signup(ctx, input)
	require.NoError(t, err)
	firstHash := codes.hashes[first.ID]

	second, err := service.Signup(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
	assert.Len(t, mail.recipients, 2)
	// re-requesting replaces the pending code
	assert.NotEqual(t, firstHash, codes.hashes[first.ID])
}

func TestSignup_UsernameTakenConflict(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupInput{Username: "reader", Email: "other@example.com"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, FieldUsername, appErr.Details[0].Field)
}

func TestSignup_EmailTakenConflict(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupInput{Username: "other", Email: "reader@example.com"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, FieldEmail, appErr.Details[0].Field)
}

func TestSignup_RejectsReservedUsername(t *testing.T) {
	service, _, _, mail := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{
		Username: "me", Email: "me@example.com",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Empty(t, mail.recipients)
}

func TestSignup_RejectsInvalidInput(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupInput{Username: "", Email: "x@example.com"})
	assert.Error(t, err)

	_, err = service.Signup(ctx, SignupInput{Username: "ok", Email: "not-an-email"})
	assert.Error(t, err)

	_, err = service.Signup(ctx, SignupInput{Username: "bad name", Email: "x@example.com"})
	assert.Error(t, err)
}

// # Token exchange

func TestIssueToken_SuccessConsumesCode(t *testing.T) {
	service, users, codes, _ := newTestService()
	ctx := context.Background()

	user := &User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, saveCode(ctx, codes, "u1", "secret-code"))

	out, err := service.IssueToken(ctx, TokenInput{Username: "reader", ConfirmationCode: "secret-code"})
	require.NoError(t, err)
	assert.Equal(t, "token:reader:user", out.AccessToken)
	assert.Equal(t, "Bearer", out.TokenType)

	// single-use: the same code cannot be exchanged again
	_, err = service.IssueToken(ctx, TokenInput{Username: "reader", ConfirmationCode: "secret-code"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestIssueToken_EmbedsEffectiveRole(t *testing.T) {
	service, users, codes, _ := newTestService()
	ctx := context.Background()

	user := &User{ID: "u2", Username: "ops", Email: "ops@example.com", Role: sec.RoleUser, IsSuperuser: true}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, saveCode(ctx, codes, "u2", "secret-code"))

	out, err := service.IssueToken(ctx, TokenInput{Username: "ops", ConfirmationCode: "secret-code"})
	require.NoError(t, err)
	assert.Equal(t, "token:ops:admin", out.AccessToken)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.IssueToken(context.Background(), TokenInput{
		Username: "ghost", ConfirmationCode: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestIssueToken_WrongCode(t *testing.T) {
	service, users, codes, _ := newTestService()
	ctx := context.Background()

	user := &User{ID: "u3", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, saveCode(ctx, codes, "u3", "right-code"))

	_, err := service.IssueToken(ctx, TokenInput{Username: "reader", ConfirmationCode: "wrong-code"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, FieldConfirmationCode, appErr.Details[0].Field)

	// a failed attempt does not burn the real code
	_, err = service.IssueToken(ctx, TokenInput{Username: "reader", ConfirmationCode: "right-code"})
	assert.NoError(t, err)
}

func saveCode(ctx context.Context, codes *fakeCodeRepo, userID, plain string) error {
	hash, err := sec.HashCode(plain)
	if err != nil {
		return err
	}
	return codes.Save(ctx, userID, hash, time.Hour)
}
