// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer: signup, email confirmation,
and access token issuance.

It defines the User entity and the capability predicates derived from it.
There are no passwords in this system — proving control of the registered
email (via a one-time confirmation code) is the only authentication factor.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/hyoka/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Hyoka platform.
type User struct {
	ID        string       `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// IsSuperuser and IsStaff are admin-equivalent flags kept for parity
	// with externally provisioned accounts (e.g. an ops bootstrap user).
	// They are never settable through the public API.
	IsSuperuser bool `json:"-"`
	IsStaff     bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// # Capability Predicates

// IsAdmin reports whether the account holds admin capability: the admin
// role, or either of the superuser/staff flags.
func (user *User) IsAdmin() bool {
	return user.Role == sec.RoleAdmin || user.IsSuperuser || user.IsStaff
}

// IsModerator reports whether the account holds the moderator role.
// Note this is strict role equality: admins are not "moderators", they
// simply outrank them.
func (user *User) IsModerator() bool {
	return user.Role == sec.RoleModerator
}

// EffectiveRole collapses the superuser/staff flags into the role that is
// embedded in issued access tokens, so route-level checks never need the
// full user record.
func (user *User) EffectiveRole() sec.UserRole {
	if user.IsAdmin() {
		return sec.RoleAdmin
	}
	return user.Role
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
)
