// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"
	"time"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/models"
)

// SolveResult is the tagged outcome of a ledger write, so callers (and
// tests) can observe exactly what transitioned without polling separately.
type SolveResult struct {
	Success       bool
	AlreadySolved bool
	IsFirst       bool
}

// RecentSolve is one row of the activity feed.
type RecentSolve struct {
	PuzzleID int       `json:"puzzle_id"`
	Nickname string    `json:"nickname"`
	SolvedAt time.Time `json:"solved_at"`
}

// LeaderboardEntry is one row of the contributor leaderboard.
type LeaderboardEntry struct {
	Nickname string `json:"nickname"`
	Solves   int    `json:"solves"`
}

// RecordSolve appends a solve for (participant, puzzle). Idempotent: a
// repeat submission returns AlreadySolved with no write. IsFirst reports
// whether this was the first solve of the puzzle by anyone.
//
// The check-then-insert sequence must not let two concurrent first
// submissions both see IsFirst. The per-puzzle mutex serializes it; the
// transaction keeps the check and the insert on one consistent view.
func (s *Store) RecordSolve(participantID string, puzzleID int) (SolveResult, error) {
	if _, ok := catalog.Get(puzzleID); !ok {
		return SolveResult{}, ErrUnknownPuzzle
	}

	lock := s.puzzleLock(puzzleID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return SolveResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM solve
			WHERE participant_id = $1 AND puzzle_id = $2
		)
	`, participantID, puzzleID).Scan(&exists)
	if err != nil {
		return SolveResult{}, fmt.Errorf("failed to check existing solve: %w", err)
	}

	if exists {
		return SolveResult{AlreadySolved: true}, nil
	}

	var priorSolves int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM solve WHERE puzzle_id = $1
	`, puzzleID).Scan(&priorSolves)
	if err != nil {
		return SolveResult{}, fmt.Errorf("failed to count solves: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO solve (participant_id, puzzle_id, solved_at)
		VALUES ($1, $2, $3)
	`, participantID, puzzleID, time.Now())
	if err != nil {
		return SolveResult{}, fmt.Errorf("failed to insert solve: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SolveResult{}, fmt.Errorf("failed to commit solve: %w", err)
	}

	return SolveResult{Success: true, IsFirst: priorSolves == 0}, nil
}

// SolvedGlobally reports whether anyone has solved the puzzle.
func (s *Store) SolvedGlobally(puzzleID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM solve WHERE puzzle_id = $1)
	`, puzzleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check global solve: %w", err)
	}
	return exists, nil
}

// StepUnlocked applies the global step-gating rule: step 1 of every branch
// is always open; step k needs step k-1 of the same branch solved by anyone.
// Re-checked on every request, never cached.
func (s *Store) StepUnlocked(p models.Puzzle) (bool, error) {
	if p.Step == 1 {
		return true, nil
	}
	prev, ok := catalog.At(p.Branch, p.Step-1)
	if !ok {
		return false, fmt.Errorf("%w: %s step %d", ErrUnknownPuzzle, p.Branch, p.Step-1)
	}
	return s.SolvedGlobally(prev.ID)
}

// GloballySolved returns the set of puzzle ids with at least one solve.
func (s *Store) GloballySolved() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT DISTINCT puzzle_id FROM solve`)
	if err != nil {
		return nil, fmt.Errorf("failed to query solved puzzles: %w", err)
	}
	defer rows.Close()

	solved := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle id: %w", err)
		}
		solved[id] = true
	}
	return solved, rows.Err()
}

// SolvedByParticipant returns one player's personal solved set.
func (s *Store) SolvedByParticipant(participantID string) (map[int]bool, error) {
	rows, err := s.db.Query(`
		SELECT puzzle_id FROM solve WHERE participant_id = $1
	`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant solves: %w", err)
	}
	defer rows.Close()

	solved := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle id: %w", err)
		}
		solved[id] = true
	}
	return solved, rows.Err()
}

// GlobalSolveCount counts distinct globally solved puzzles.
func (s *Store) GlobalSolveCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT puzzle_id) FROM solve`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// RecentSolves returns the newest-first activity feed with nicknames joined.
func (s *Store) RecentSolves(limit int) ([]RecentSolve, error) {
	rows, err := s.db.Query(`
		SELECT s.puzzle_id, p.nickname, s.solved_at
		FROM solve s
		JOIN participant p ON p.id = s.participant_id
		ORDER BY s.solved_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent solves: %w", err)
	}
	defer rows.Close()

	feed := []RecentSolve{}
	for rows.Next() {
		var r RecentSolve
		if err := rows.Scan(&r.PuzzleID, &r.Nickname, &r.SolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent solve: %w", err)
		}
		feed = append(feed, r)
	}
	return feed, rows.Err()
}

// Leaderboard returns the top contributors by solve count, ties broken by
// nickname ascending.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.Query(`
		SELECT p.nickname, COUNT(*) AS solves
		FROM solve s
		JOIN participant p ON p.id = s.participant_id
		GROUP BY p.id, p.nickname
		ORDER BY solves DESC, p.nickname ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	board := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Nickname, &e.Solves); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		board = append(board, e)
	}
	return board, rows.Err()
}

// CompleteBranch sets the branch's durable completion flag. Exactly-once:
// only the call that actually wrote the row reports true, so completion
// side effects (digit awards, celebration) can never double-fire. The flag
// may only be set once the branch's final step has a global solve.
func (s *Store) CompleteBranch(code string) (bool, error) {
	final, ok := catalog.At(code, catalog.StepsPerBranch)
	if !ok {
		return false, ErrUnknownBranch
	}

	lock := s.puzzleLock(final.ID)
	lock.Lock()
	defer lock.Unlock()

	solved, err := s.SolvedGlobally(final.ID)
	if err != nil {
		return false, err
	}
	if !solved {
		return false, fmt.Errorf("branch %s final step has no global solve", code)
	}

	res, err := s.db.Exec(`
		INSERT INTO completion_flag (branch, unlocked_at)
		VALUES ($1, $2)
		ON CONFLICT (branch) DO NOTHING
	`, code, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to set completion flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CompletedBranches returns the codes of complete branches in canonical
// branch order, regardless of completion order.
func (s *Store) CompletedBranches() ([]string, error) {
	rows, err := s.db.Query(`SELECT branch FROM completion_flag`)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion flags: %w", err)
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan completion flag: %w", err)
		}
		set[code] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	completed := []string{}
	for _, b := range catalog.Branches() {
		if set[b.Code] {
			completed = append(completed, b.Code)
		}
	}
	return completed, nil
}
