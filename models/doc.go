// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: nickname (optional)
  - SetNicknameRequest: nickname
  - SubmitAnswerRequest: answer
  - OpenVaultRequest: code
  - SetOverrideRequest: location, prompt, answer (all optional)
  - SetValueRequest: value
  - SwapSolvesRequest: puzzle_a, puzzle_b

# Response Types

Types for JSON responses:

  - RegisterResponse: participant_id, nickname, token
  - SubmitAnswerResponse: outcome plus transition flags
  - OpenVaultResponse: correct
  - PuzzleView: participant-facing puzzle (no answer, gated location)
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Participant: identity, nickname, bearer token
  - Puzzle: immutable catalog entry
  - Branch: puzzle group with its 2-digit vault reward
  - Solve: one (participant, puzzle) ledger row
  - Override: admin-authored replacement fields for one puzzle

# Constants

Submission outcomes:

	OutcomeLocked        = "locked"
	OutcomeIncorrect     = "incorrect"
	OutcomeAlreadySolved = "already_solved"
	OutcomeSolved        = "solved"
	OutcomeFirstSolve    = "first_solve"

Branch states:

	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateComplete   = "complete"

Scalar value names:

	ScalarPermutationKey = "permutation_key"
*/
package models
