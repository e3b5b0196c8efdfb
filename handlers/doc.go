// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the MidnightVault API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - ParticipantHandler: registration and nicknames
  - PlayHandler: puzzle views and answer submission
  - StatusHandler: progress snapshot and vault opening
  - AdminHandler: overrides, scalar values, reset, force-solve, swap

Handlers are created via constructor functions that accept *ledger.Store
and Config:

	playHandler := handlers.NewPlayHandler(store, cfg)

# Play Flow

Players register once, then scan QR codes that land on puzzle pages:

	POST /participants             → Register (returns token)
	GET  /puzzles/{id}             → GetPuzzle (hint-gated view)
	POST /puzzles/{id}/submit      → Submit (outcome + transition flags)
	GET  /status                   → GetStatus (poll-safe snapshot)
	POST /vault/open               → OpenVault

Player operations use the X-Player-Token header.

# Submission Outcomes

Submit distinguishes five outcomes so the UI can react precisely:

	locked         409  prerequisite step unsolved (checked before the answer)
	incorrect      200  normalized answer mismatch, always retryable
	already_solved 200  idempotent repeat, no celebration
	solved         201  correct, someone beat you to it
	first_solve    201  first global solve; may carry branch_completed,
	                    hub_unlocked, vault_unlocked transition flags

# Admin Operations

Admin endpoints require the X-Admin-Secret header:

	GET    /admin/status
	PUT    /admin/puzzles/{id}/override
	DELETE /admin/puzzles/{id}/override
	PUT    /admin/values/{name}
	POST   /admin/reset
	POST   /admin/solve-all
	POST   /admin/swap
*/
package handlers
