// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
)

func TestValidator_Required(t *testing.T) {
	assert.NoError(t, New().Required("name", "Dune").Err())
	assert.Error(t, New().Required("name", "").Err())
	assert.Error(t, New().Required("name", "   ").Err())
}

func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "simple", value: "book_lover42", wantErr: false},
		{name: "allowed punctuation", value: "user.name@host+x-1", wantErr: false},
		{name: "digits only", value: "12345", wantErr: false},
		{name: "reserved me", value: "me", wantErr: true},
		{name: "spaces", value: "two words", wantErr: true},
		{name: "hash sign", value: "nope#1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Username("username", tt.value).Err()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Slug(t *testing.T) {
	assert.NoError(t, New().Slug("slug", "science-fiction").Err())
	assert.NoError(t, New().Slug("slug", "a1").Err())
	assert.Error(t, New().Slug("slug", "Upper-Case").Err())
	assert.Error(t, New().Slug("slug", "-leading").Err())
	assert.Error(t, New().Slug("slug", "trailing-").Err())
	assert.Error(t, New().Slug("slug", "under_score").Err())
}

func TestValidator_Range(t *testing.T) {
	assert.NoError(t, New().Range("score", 1, 1, 10).Err())
	assert.NoError(t, New().Range("score", 10, 1, 10).Err())
	assert.Error(t, New().Range("score", 0, 1, 10).Err())
	assert.Error(t, New().Range("score", 11, 1, 10).Err())
}

func TestValidator_PastOrPresentYear(t *testing.T) {
	current := time.Now().Year()
	assert.NoError(t, New().PastOrPresentYear("year", current).Err())
	assert.NoError(t, New().PastOrPresentYear("year", 1868).Err())
	assert.Error(t, New().PastOrPresentYear("year", current+1).Err())
}

func TestValidator_Email(t *testing.T) {
	assert.NoError(t, New().Email("email", "reader@example.com").Err())
	assert.Error(t, New().Email("email", "not-an-email").Err())
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	err := New().
		Required("name", "").
		Range("score", 42, 1, 10).
		Err()
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Len(t, appErr.Details, 2)
	assert.Equal(t, "name", appErr.Details[0].Field)
	assert.Equal(t, "score", appErr.Details[1].Field)
}

func TestValidator_OneOf(t *testing.T) {
	assert.NoError(t, New().OneOf("role", "moderator", "user", "moderator", "admin").Err())
	assert.Error(t, New().OneOf("role", "owner", "user", "moderator", "admin").Err())
}
