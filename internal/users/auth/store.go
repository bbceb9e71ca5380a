// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/hyoka/pkg/pagination"
)

// # Repository Interfaces

// UserRepository defines persistence operations for user accounts. It is
// shared with the account package, which layers the administrative user
// management endpoints on top of the same storage.
type UserRepository interface {
	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername retrieves a user by their unique username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail retrieves a user by their unique email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns a page of users plus the total count. When search is
	// non-empty it filters by username substring.
	List(ctx context.Context, search string, params pagination.Params) ([]*User, int, error)

	// Create persists a new user. Unique collisions on username or email
	// surface as field-scoped conflict errors.
	Create(ctx context.Context, user *User) error

	// Update persists changes to an existing user's profile fields and role.
	Update(ctx context.Context, user *User) error

	// DeleteByUsername removes a user account.
	DeleteByUsername(ctx context.Context, username string) error
}

// CodeRepository stores confirmation code hashes keyed by user ID. Codes
// are single-use and expire on their own; only the bcrypt hash is ever
// persisted.
type CodeRepository interface {
	// Save stores the code hash for a user, replacing any previous code.
	Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error

	// Get retrieves the stored code hash for a user. A missing or expired
	// code yields ErrCodeNotFound.
	Get(ctx context.Context, userID string) (string, error)

	// Delete removes the code after a successful exchange.
	Delete(ctx context.Context, userID string) error
}
