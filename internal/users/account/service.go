// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements user administration and self-service profiles.

It layers the admin-only /users collection and the /users/me endpoints on
top of the auth package's user storage. Accounts created here are active
immediately; the confirmation-code dance only applies to self-signup.
*/
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/platform/validate"
	"github.com/taibuivan/hyoka/internal/users/auth"
	"github.com/taibuivan/hyoka/pkg/pagination"
	"github.com/taibuivan/hyoka/pkg/pointer"
)

// Service implements user administration on top of the shared user store.
type Service struct {
	users auth.UserRepository
}

// NewService creates the account service.
func NewService(users auth.UserRepository) *Service {
	return &Service{users: users}
}

// # Inputs

// CreateInput is the admin request body for POST /users.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput carries partial updates; nil pointer fields are left
// untouched. Username is immutable.
type UpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Operations

// List returns a page of users, optionally filtered by username substring.
func (service *Service) List(ctx context.Context, search string, params pagination.Params) ([]*auth.User, int, error) {
	return service.users.List(ctx, search, params)
}

/*
Create provisions a user account directly, without the confirmation flow.
Role defaults to "user" when omitted.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}
	err := validate.New().
		Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxFirstNameLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.MaxLastNameLength).
		MaxLen(auth.FieldBio, input.Bio, auth.MaxBioLength).
		OneOf(auth.FieldRole, input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin)).
		Err()
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user for the admin detail endpoint.
func (service *Service) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}

/*
UpdateByUsername applies a partial update to any account, including role
changes. Only admins reach this path.
*/
func (service *Service) UpdateByUsername(ctx context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(user, input, true); err != nil {
		return nil, err
	}
	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteByUsername removes a user account.
func (service *Service) DeleteByUsername(ctx context.Context, username string) error {
	return service.users.DeleteByUsername(ctx, username)
}

// GetMe returns the authenticated caller's own profile.
func (service *Service) GetMe(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

/*
UpdateMe applies a partial update to the caller's own profile. The role
field is read-only here regardless of the caller's privileges; role changes
go through the admin endpoint.
*/
func (service *Service) UpdateMe(ctx context.Context, userID string, input UpdateInput) (*auth.User, error) {
	user, err := service.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(user, input, false); err != nil {
		return nil, err
	}
	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Internals

func applyUpdate(user *auth.User, input UpdateInput, allowRole bool) error {
	email := pointer.Fallback(input.Email, user.Email)
	role := string(user.Role)
	if allowRole && input.Role != nil {
		role = *input.Role
	}

	err := validate.New().
		Required(auth.FieldEmail, email).
		MaxLen(auth.FieldEmail, email, auth.MaxEmailLength).
		Email(auth.FieldEmail, email).
		MaxLen(auth.FieldFirstName, pointer.Val(input.FirstName), auth.MaxFirstNameLength).
		MaxLen(auth.FieldLastName, pointer.Val(input.LastName), auth.MaxLastNameLength).
		MaxLen(auth.FieldBio, pointer.Val(input.Bio), auth.MaxBioLength).
		OneOf(auth.FieldRole, role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin)).
		Err()
	if err != nil {
		return err
	}

	user.Email = email
	user.FirstName = pointer.Fallback(input.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(input.LastName, user.LastName)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)
	user.Role = sec.UserRole(role)
	return nil
}
