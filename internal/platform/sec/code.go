// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSecureToken returns a hex-encoded random token of byteLength bytes.
//
// It is used for confirmation codes, where unguessability matters and the
// value is handed to the user out-of-band (email).
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashCode hashes a confirmation code with bcrypt before it is persisted.
//
// Codes grant account access the same way a password would, so they are
// never stored in plaintext.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain confirmation code against its stored hash.
// The comparison inside bcrypt is constant-time.
func CheckCodeHash(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
