// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminSecret = errors.New("invalid admin secret")
	ErrInvalidToken       = errors.New("invalid token format")
)

// GeneratePlayerToken creates a random secure bearer token for a
// participant. The token is the participant's only credential.
func GeneratePlayerToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate player token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateAdminSecret compares the provided secret against the configured
// one in constant time. There is a single shared admin secret for the whole
// game; nothing finer-grained is needed for a one-room party.
func ValidateAdminSecret(provided, configured string) error {
	if configured == "" || !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrInvalidAdminSecret
	}
	return nil
}

// ValidateTokenFormat rejects obviously malformed tokens before a database
// lookup. Real validation is the lookup itself.
func ValidateTokenFormat(token string) error {
	if len(token) < 16 || len(token) > 128 {
		return ErrInvalidToken
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return ErrInvalidToken
		}
	}
	return nil
}
