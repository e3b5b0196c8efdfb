// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and admin secret validation.

# Player Tokens

Player tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GeneratePlayerToken()

Tokens are URL-safe base64 encoded and sent as the X-Player-Token header.
The token is the participant's only credential; the cookie that carries it
to the browser is issued by the presentation layer, not here.

# Admin Secret

A single shared secret guards all admin operations:

	err := auth.ValidateAdminSecret(r.Header.Get("X-Admin-Secret"), cfg.AdminSecret)

Comparison is constant-time via hmac.Equal. An empty configured secret
never validates.

# Token Format

ValidateTokenFormat cheaply rejects malformed tokens (wrong length or
characters outside the base64url alphabet) before hitting the database.
*/
package auth
