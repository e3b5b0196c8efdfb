// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MidnightVault API server.

MidnightVault is the backend for a one-room party puzzle hunt: players
scan QR codes, submit answers, and the server tracks per-player and global
solve state. Four branches of three puzzles each award fixed digit pairs;
completing all four makes the vault code computable via a runtime
permutation key.

# Starting the Server

The server requires an admin secret, via environment variables (or .env)
or CLI flags:

	ADMIN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 2374 -t sqlite -d midnightvault.db --admin-secret ...

# Configuration

Required settings:

  - ADMIN_SECRET (--admin-secret): shared secret for admin operations

Optional settings:

  - PORT (-p): server port (default: 2374)
  - DATABASE_URL (-d): sqlite file path or postgres URL
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PERMUTATION_KEY (--permutation-key): vault permutation key seed
  - VAULT_OVERRIDE_CODE (--vault-override): operator escape-hatch code

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (participants, play, status, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and admin secret validation
  - catalog: Static puzzle content and answer normalization
  - ledger: Solve ledger and unlock state machine
  - vault: Digit permutation and vault code derivation
  - progress: Read-only aggregation snapshot
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
