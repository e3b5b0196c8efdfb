// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

WithLogging wraps handlers with structured request/completion logs:

	mux.HandleFunc("GET /status", middleware.WithLogging(handler.GetStatus))

# JSON Helpers

  - JSONResponse: write any value as JSON with a status code
  - ErrorResponse: write a models.ErrorResponse
  - ParseJSONBody: decode a request body

# CORS

CORS allows the externally served puzzle pages (the QR landing pages) to
call this API cross-origin, including the X-Player-Token and
X-Admin-Secret headers and preflight handling.

# Client IP

GetClientIP resolves the real client address behind proxies:
X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
