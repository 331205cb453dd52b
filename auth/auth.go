// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingCredentials = errors.New("missing user credentials")
	ErrInvalidToken       = errors.New("invalid user token")
)

// GenerateID creates a random UUID for database records
func GenerateID() string {
	return uuid.NewString()
}

// GenerateUserToken creates an HMAC-based token for a user.
// This is deterministic and verifiable without storing the token.
func GenerateUserToken(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateUserToken checks if the provided token belongs to the user
func ValidateUserToken(userID, token, salt string) error {
	if userID == "" || token == "" {
		return ErrMissingCredentials
	}
	expected := GenerateUserToken(userID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}
