// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package progress

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/vault"
)

// Global milestone thresholds, counted over completion flags. Recomputed on
// every query; never stored.
const (
	HubThreshold   = 2
	VaultThreshold = 4
)

// Feed and leaderboard sizes for the snapshot.
const (
	recentLimit      = 10
	leaderboardLimit = 5
)

type BranchStatus struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Steps    []bool `json:"steps"`
	Complete bool   `json:"complete"`
}

type Activity struct {
	PuzzleID int    `json:"puzzle_id"`
	Nickname string `json:"nickname"`
	When     string `json:"when"`
}

type Personal struct {
	ParticipantID string `json:"participant_id"`
	Nickname      string `json:"nickname"`
	SolvedPuzzles []int  `json:"solved_puzzles"`
	SolvedCount   int    `json:"solved_count"`
}

// Snapshot is the consumer-ready aggregate state. Building one performs no
// mutation, so it is safe to poll at arbitrary frequency.
type Snapshot struct {
	SolvedCount       int                       `json:"solved_count"`
	TotalPuzzles      int                       `json:"total_puzzles"`
	PercentComplete   int                       `json:"percent_complete"`
	Branches          []BranchStatus            `json:"branches"`
	CompletedBranches []string                  `json:"completed_branches"`
	HubUnlocked       bool                      `json:"hub_unlocked"`
	VaultUnlocked     bool                      `json:"vault_unlocked"`
	Digits            string                    `json:"digits"`
	Leaderboard       []ledger.LeaderboardEntry `json:"leaderboard"`
	Recent            []Activity                `json:"recent"`
	Personal          *Personal                 `json:"personal,omitempty"`
}

// Build composes the snapshot from the ledger. With a non-nil participant,
// the snapshot also carries that player's personal solved set.
func Build(st *ledger.Store, participant *models.Participant) (Snapshot, error) {
	solved, err := st.GloballySolved()
	if err != nil {
		return Snapshot{}, err
	}

	completed, err := st.CompletedBranches()
	if err != nil {
		return Snapshot{}, err
	}
	completedSet := make(map[string]bool, len(completed))
	for _, c := range completed {
		completedSet[c] = true
	}

	branches := []BranchStatus{}
	for _, b := range catalog.Branches() {
		bs := BranchStatus{
			Code:     b.Code,
			Name:     b.Name,
			Complete: completedSet[b.Code],
			State:    models.StateNotStarted,
		}
		any := false
		for _, p := range catalog.ByBranch(b.Code) {
			stepSolved := solved[p.ID]
			bs.Steps = append(bs.Steps, stepSolved)
			if stepSolved {
				any = true
			}
		}
		if bs.Complete {
			bs.State = models.StateComplete
		} else if any {
			bs.State = models.StateInProgress
		}
		branches = append(branches, bs)
	}

	board, err := st.Leaderboard(leaderboardLimit)
	if err != nil {
		return Snapshot{}, err
	}

	recentRows, err := st.RecentSolves(recentLimit)
	if err != nil {
		return Snapshot{}, err
	}
	recent := []Activity{}
	for _, r := range recentRows {
		recent = append(recent, Activity{
			PuzzleID: r.PuzzleID,
			Nickname: r.Nickname,
			When:     humanize.Time(r.SolvedAt),
		})
	}

	total := catalog.Size()
	snap := Snapshot{
		SolvedCount:       len(solved),
		TotalPuzzles:      total,
		PercentComplete:   len(solved) * 100 / total,
		Branches:          branches,
		CompletedBranches: completed,
		HubUnlocked:       len(completed) >= HubThreshold,
		VaultUnlocked:     len(completed) >= VaultThreshold,
		Digits:            vault.BuildDigits(completed),
		Leaderboard:       board,
		Recent:            recent,
	}

	if participant != nil {
		mine, err := st.SolvedByParticipant(participant.ID)
		if err != nil {
			return Snapshot{}, err
		}
		ids := []int{}
		for id := range mine {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		snap.Personal = &Personal{
			ParticipantID: participant.ID,
			Nickname:      participant.Nickname,
			SolvedPuzzles: ids,
			SolvedCount:   len(ids),
		}
	}

	return snap, nil
}

// HintVisible is the progressive-disclosure rule for location hints: show
// for step 1, for any globally solved puzzle, or once the immediately
// preceding step in the branch is solved globally. This is pacing, not
// access control - the same answer for every viewer.
func HintVisible(p models.Puzzle, globallySolved map[int]bool) bool {
	if p.Step == 1 {
		return true
	}
	if globallySolved[p.ID] {
		return true
	}
	prev, ok := catalog.At(p.Branch, p.Step-1)
	if !ok {
		return false
	}
	return globallySolved[prev.ID]
}
