// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("owner").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   UserRole
		target UserRole
		want   bool
	}{
		{name: "admin outranks moderator", role: RoleAdmin, target: RoleModerator, want: true},
		{name: "admin outranks user", role: RoleAdmin, target: RoleUser, want: true},
		{name: "moderator meets moderator", role: RoleModerator, target: RoleModerator, want: true},
		{name: "moderator below admin", role: RoleModerator, target: RoleAdmin, want: false},
		{name: "user below moderator", role: RoleUser, target: RoleModerator, want: false},
		{name: "unknown role has no rank", role: UserRole("owner"), target: RoleUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}
