// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the authoritative solve record and unlock state machine.

# Solve Ledger

Solves are append-only facts with primary key (participant, puzzle):

	result, err := store.RecordSolve(participantID, puzzleID)

RecordSolve is idempotent (a repeat returns AlreadySolved with no write)
and detects the first global solve of a puzzle (IsFirst). The
check-then-insert sequence is serialized by an in-process mutex per puzzle
id wrapped around a transaction, so two concurrent first submissions can
never both observe IsFirst. Both supported stores run behind this single
server process, which makes the in-process mutex a sound serialization
point.

# Completion Flags

A branch's flag is set exactly once, the first time its final step is
solved globally:

	set, err := store.CompleteBranch("F")

Only the call that wrote the flag gets set=true, which is what lets
callers fire celebration side effects exactly once. Flags are monotonic:
nothing clears them except Reset.

# Step Gating

StepUnlocked applies the global progressive-unlock rule: step 1 is always
open, step k needs step k-1 solved by anyone. Gating is re-checked on
every request and never cached.

# Projections

Read operations are pure projections: GloballySolved, SolvedByParticipant,
GlobalSolveCount, RecentSolves (newest first, nicknames joined), and
Leaderboard (solve count descending, nickname ascending tiebreak).

# Runtime Configuration and Overrides

Scalar values (the permutation key) and puzzle overrides live here too.
These are low-frequency admin writes; concurrent edits to the same field
are an accepted last-write-wins race.

# Admin Tools

Reset clears solves, participants, and flags while preserving scalar
values. ForceSolveAll replays a full game for a synthetic participant.
SwapSolves relabels solves between two puzzle ids after a QR mixup.
*/
package ledger
