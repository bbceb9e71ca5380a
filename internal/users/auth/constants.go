// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Token & Code Policy

const (
	// AccessTokenTTL is the lifetime of an issued JWT access token.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeTTL is how long a confirmation code remains
	// exchangeable after signup. Requesting a new code replaces the
	// old one and resets the window.
	ConfirmationCodeTTL = 24 * time.Hour

	// ConfirmationCodeBytes is the entropy of a confirmation code in
	// bytes; the code itself is the hex encoding (twice this length).
	ConfirmationCodeBytes = 16
)

// # Field Limits

const (
	MaxUsernameLength  = 150
	MaxEmailLength     = 254
	MaxFirstNameLength = 150
	MaxLastNameLength  = 150
	MaxBioLength       = 200
)

// # Mail Templates

const (
	confirmationMailSubject = "Your Hyoka confirmation code"
	confirmationMailBody    = "Hello %s,\n\nYour confirmation code is: %s\n\nExchange it at POST /api/v1/auth/token to receive an access token.\nThe code expires in 24 hours.\n"
)
