// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/models"
)

// Reset wipes all game progress: solves, participants, and completion
// flags. Scalar values survive, so the permutation key keeps its runtime
// value; overrides are authored content, not progress, and survive too.
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM solve`,
		`DELETE FROM completion_flag`,
		`DELETE FROM participant`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("reset failed on %q: %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// ForceSolveAll is a testing aid: it creates a synthetic participant and
// records a solve for every puzzle, firing the same completion transitions
// a real playthrough would. Returns the branches newly completed by this
// call.
func (s *Store) ForceSolveAll(nickname string) (models.Participant, []string, error) {
	p, err := s.CreateParticipant(nickname)
	if err != nil {
		return models.Participant{}, nil, err
	}

	for _, pz := range catalog.All() {
		if _, err := s.RecordSolve(p.ID, pz.ID); err != nil {
			return models.Participant{}, nil, fmt.Errorf("force solve of puzzle %d: %w", pz.ID, err)
		}
	}

	newlyCompleted := []string{}
	for _, b := range catalog.Branches() {
		set, err := s.CompleteBranch(b.Code)
		if err != nil {
			return models.Participant{}, nil, err
		}
		if set {
			newlyCompleted = append(newlyCompleted, b.Code)
		}
	}

	return p, newlyCompleted, nil
}

// SwapSolves moves every solve of puzzle a to puzzle b and vice versa. This
// is the corrective tool for miscategorized QR scans (two codes printed on
// swapped cards). Completion flags are not touched: flags are monotonic and
// a swap is a relabeling, not a revocation.
func (s *Store) SwapSolves(a, b int) error {
	if _, ok := catalog.Get(a); !ok {
		return ErrUnknownPuzzle
	}
	if _, ok := catalog.Get(b); !ok {
		return ErrUnknownPuzzle
	}
	if a == b {
		return nil
	}

	// Lock both puzzles in id order so a concurrent RecordSolve can't
	// interleave with the three-step swap.
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	loLock, hiLock := s.puzzleLock(lo), s.puzzleLock(hi)
	loLock.Lock()
	defer loLock.Unlock()
	hiLock.Lock()
	defer hiLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin swap: %w", err)
	}
	defer tx.Rollback()

	// Three-step swap through a sentinel id that can never collide with a
	// catalog puzzle, keeping the (participant, puzzle) PK satisfied at
	// every point.
	if _, err := tx.Exec(`UPDATE solve SET puzzle_id = -1 WHERE puzzle_id = $1`, a); err != nil {
		return fmt.Errorf("swap step 1 failed: %w", err)
	}
	if _, err := tx.Exec(`UPDATE solve SET puzzle_id = $1 WHERE puzzle_id = $2`, a, b); err != nil {
		return fmt.Errorf("swap step 2 failed: %w", err)
	}
	if _, err := tx.Exec(`UPDATE solve SET puzzle_id = $1 WHERE puzzle_id = -1`, b); err != nil {
		return fmt.Errorf("swap step 3 failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit swap: %w", err)
	}
	return nil
}
