// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Submission outcome constants
const (
	OutcomeLocked        = "locked"
	OutcomeIncorrect     = "incorrect"
	OutcomeAlreadySolved = "already_solved"
	OutcomeSolved        = "solved"
	OutcomeFirstSolve    = "first_solve"
)

// Branch state constants
const (
	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateComplete   = "complete"
)

// Scalar value names
const (
	ScalarPermutationKey = "permutation_key"
)

// Request types

type RegisterRequest struct {
	Nickname string `json:"nickname"`
}

type SetNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type OpenVaultRequest struct {
	Code string `json:"code"`
}

// Override fields are pointers: nil means "keep the catalog default".
type SetOverrideRequest struct {
	Location *string `json:"location"`
	Prompt   *string `json:"prompt"`
	Answer   *string `json:"answer"`
}

type SetValueRequest struct {
	Value string `json:"value"`
}

type SwapSolvesRequest struct {
	PuzzleA int `json:"puzzle_a"`
	PuzzleB int `json:"puzzle_b"`
}

// Response types

type RegisterResponse struct {
	ParticipantID string `json:"participant_id"`
	Nickname      string `json:"nickname"`
	Token         string `json:"token"`
}

type SubmitAnswerResponse struct {
	Outcome         string `json:"outcome"`
	Branch          string `json:"branch,omitempty"`
	BranchCompleted bool   `json:"branch_completed"`
	HubUnlocked     bool   `json:"hub_unlocked"`
	VaultUnlocked   bool   `json:"vault_unlocked"`
}

type OpenVaultResponse struct {
	Correct bool `json:"correct"`
}

// PuzzleView is the participant-facing shape of a puzzle. The canonical
// answer never appears here, and Location is empty unless the
// progressive-disclosure rule allows it.
type PuzzleView struct {
	ID             int    `json:"id"`
	Branch         string `json:"branch"`
	BranchName     string `json:"branch_name"`
	Step           int    `json:"step"`
	Location       string `json:"location,omitempty"`
	LocationHidden bool   `json:"location_hidden"`
	Prompt         string `json:"prompt"`
	Locked         bool   `json:"locked"`
	SolvedGlobally bool   `json:"solved_globally"`
	SolvedByYou    bool   `json:"solved_by_you"`
}

// Domain types

type Participant struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Puzzle is an immutable catalog entry. Answer is stored normalized.
type Puzzle struct {
	ID       int    `json:"id"`
	Branch   string `json:"branch"`
	Step     int    `json:"step"`
	Location string `json:"location"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"-"` // Never expose in JSON
}

// Branch groups three sequential puzzles and carries its 2-digit vault
// reward. Digits are static configuration, never derived from content.
type Branch struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Digits string `json:"digits"`
}

type Solve struct {
	ParticipantID string    `json:"participant_id"`
	PuzzleID      int       `json:"puzzle_id"`
	SolvedAt      time.Time `json:"solved_at"`
}

// Override supersedes catalog fields for one puzzle. A nil field falls
// back to the catalog default; deleting the row restores all defaults.
type Override struct {
	PuzzleID  int       `json:"puzzle_id"`
	Location  *string   `json:"location"`
	Prompt    *string   `json:"prompt"`
	Answer    *string   `json:"answer"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
