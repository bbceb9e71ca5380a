// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/ctxutil"
	"github.com/taibuivan/hyoka/internal/platform/mailer"
	"github.com/taibuivan/hyoka/internal/platform/sec"
	"github.com/taibuivan/hyoka/internal/platform/validate"
)

// # Collaborator Interfaces

// TokenProvider issues signed access tokens. Satisfied by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// # Service

// Service implements the signup and token-exchange flows.
type Service struct {
	users  UserRepository
	codes  CodeRepository
	tokens TokenProvider
	mail   mailer.Mailer
}

// NewService creates the auth service.
func NewService(users UserRepository, codes CodeRepository, tokens TokenProvider, mail mailer.Mailer) *Service {
	return &Service{users: users, codes: codes, tokens: tokens, mail: mail}
}

// # Inputs

// SignupInput is the request body for POST /auth/signup.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenInput is the request body for POST /auth/token.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// TokenOutput is the response body for a successful token exchange.
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// # Operations

/*
Signup registers a user (or re-requests a code for an existing one) and
emails a fresh confirmation code.

The operation is idempotent on the exact (username, email) pair: repeating
it never errors, it simply issues a new code and invalidates the previous
one. A username or email that is already bound to a different counterpart
is a conflict.

Parameters:
  - ctx: request context
  - input: desired username and email

Returns:
  - (*User, nil): the new or existing account the code was mailed to
  - (nil, error): validation failure, identifier conflict, or I/O failure
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	user, err := service.resolveAccount(ctx, input)
	if err != nil {
		return nil, err
	}

	code, err := service.issueCode(ctx, user)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(confirmationMailBody, user.Username, code)
	if err := service.mail.Send(ctx, user.Email, confirmationMailSubject, body); err != nil {
		return nil, apperr.Internal(fmt.Errorf("send confirmation mail: %w", err))
	}

	ctxutil.GetLogger(ctx).Info("confirmation code issued",
		"user_id", user.ID,
		"username", user.Username,
	)
	return user, nil
}

/*
IssueToken exchanges a valid confirmation code for a JWT access token.

The code is consumed on success; exchanging it twice fails. The token
embeds the account's effective role, so superuser and staff accounts
authenticate as admins.

Returns:
  - (*TokenOutput, nil): signed bearer token
  - (nil, error): unknown username (404), bad or expired code (400)
*/
func (service *Service) IssueToken(ctx context.Context, input TokenInput) (*TokenOutput, error) {
	if err := validate.New().
		Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode).
		Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	hash, err := service.codes.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, ErrCodeNotFound) {
		return nil, err
	}
	if err != nil || !sec.CheckCodeHash(input.ConfirmationCode, hash) {
		return nil, apperr.ValidationError("Invalid confirmation code", apperr.FieldError{
			Field: FieldConfirmationCode, Message: "Confirmation code is invalid or has expired",
		})
	}

	if err := service.codes.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := service.tokens.GenerateAccessToken(
		user.ID, user.Username, string(user.EffectiveRole()), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign access token: %w", err))
	}

	ctxutil.GetLogger(ctx).Info("access token issued",
		"user_id", user.ID,
		"role", string(user.EffectiveRole()),
	)
	return &TokenOutput{AccessToken: token, TokenType: "Bearer"}, nil
}

// # Internals

// resolveAccount finds the account matching the signup pair, or creates it.
// Partial matches (username bound to another email, or vice versa) are
// conflicts and identify the offending field.
func (service *Service) resolveAccount(ctx context.Context, input SignupInput) (*User, error) {
	existing, err := service.users.FindByUsername(ctx, input.Username)
	if err == nil {
		if existing.Email != input.Email {
			return nil, apperr.Conflict("Username is already taken", apperr.FieldError{
				Field: FieldUsername, Message: "Username is already taken",
			})
		}
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered", apperr.FieldError{
			Field: FieldEmail, Message: "Email is already registered",
		})
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	user := &User{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}
	// The unique constraints still guard the race between the lookups
	// above and this insert.
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueCode generates a fresh confirmation code, stores only its hash, and
// returns the plaintext for mailing. It is never logged or persisted.
func (service *Service) issueCode(ctx context.Context, user *User) (string, error) {
	code, err := sec.GenerateSecureToken(ConfirmationCodeBytes)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("generate confirmation code: %w", err))
	}
	hash, err := sec.HashCode(code)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("hash confirmation code: %w", err))
	}
	if err := service.codes.Save(ctx, user.ID, hash, ConfirmationCodeTTL); err != nil {
		return "", err
	}
	return code, nil
}

func validateSignup(input SignupInput) error {
	return validate.New().
		Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Email(FieldEmail, input.Email).
		Err()
}
