// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"sort"
	"strings"

	"github.com/NotThird/MidnightVault/models"
)

// StepsPerBranch is fixed: every branch is exactly 3 sequential puzzles.
const StepsPerBranch = 3

// branches is the canonical branch order. BuildDigits and every "completed
// branches" listing follow this order, never completion order.
var branches = []models.Branch{
	{Code: "F", Name: "Fridge", Digits: "41"},
	{Code: "M", Name: "Mirror", Digits: "82"},
	{Code: "D", Name: "Den", Digits: "09"},
	{Code: "B", Name: "Balcony", Digits: "53"},
}

// puzzles is the static catalog. IDs partition into branch blocks of three;
// answers are stored pre-normalized.
var puzzles = []models.Puzzle{
	{ID: 1, Branch: "F", Step: 1, Location: "Kitchen counter, next to the snack bowls", Prompt: "Open the crisper drawer. What fruit is hiding behind the seltzer?", Answer: "GRAPES"},
	{ID: 2, Branch: "F", Step: 2, Location: "Inside the fridge door, below the mustard", Prompt: "Count the magnets on the freezer door, then find the jar with that number on its lid. What's inside?", Answer: "PICKLES"},
	{ID: 3, Branch: "F", Step: 3, Location: "Freezer shelf, under the ice tray", Prompt: "Something sweet is buried under the frozen peas. Name it.", Answer: "FUDGE"},
	{ID: 4, Branch: "M", Step: 1, Location: "Hallway mirror by the coat rack", Prompt: "Read the word written on the mirror. It only makes sense backwards.", Answer: "MIDNIGHT"},
	{ID: 5, Branch: "M", Step: 2, Location: "Medicine cabinet, second shelf", Prompt: "One bottle has a label that doesn't belong in a bathroom. What does it say?", Answer: "STARDUST"},
	{ID: 6, Branch: "M", Step: 3, Location: "Behind the framed photo in the hall", Prompt: "The photo shows four people. What is the name on the back, circled in red?", Answer: "VERA"},
	{ID: 7, Branch: "D", Step: 1, Location: "Den bookshelf, third shelf from the top", Prompt: "One book is upside down. What one-word title is on its spine?", Answer: "LABYRINTH"},
	{ID: 8, Branch: "D", Step: 2, Location: "Under the record player", Prompt: "A sleeve holds the wrong record. Which composer is on the disc itself?", Answer: "HOLST"},
	{ID: 9, Branch: "D", Step: 3, Location: "Inside the chess box on the coffee table", Prompt: "One piece is missing and a note took its place. Which piece does the note apologize for?", Answer: "KNIGHT"},
	{ID: 10, Branch: "B", Step: 1, Location: "Balcony railing, left planter", Prompt: "A tag is tied to the railing with twine. What herb does it claim to mark?", Answer: "BASIL"},
	{ID: 11, Branch: "B", Step: 2, Location: "Under the lantern on the balcony table", Prompt: "The lantern's base unscrews. What constellation is drawn on the paper inside?", Answer: "ORION"},
	{ID: 12, Branch: "B", Step: 3, Location: "Taped beneath the balcony chair", Prompt: "The card under the chair asks: what do you call a lock that was never locked?", Answer: "OPEN"},
}

// NormalizeAnswer is the canonical comparison transform: trim, upper-case,
// and strip everything that is not an ASCII letter or digit. Both stored
// answers and submissions pass through it, so "Grapes!" equals "grapes".
func NormalizeAnswer(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Get returns the catalog entry for id, without overrides.
func Get(id int) (models.Puzzle, bool) {
	for _, p := range puzzles {
		if p.ID == id {
			return p, true
		}
	}
	return models.Puzzle{}, false
}

// Merged returns the catalog entry with any non-nil override fields
// substituted. Override answers are normalized at write time, so no
// re-normalization happens here. The base catalog is never mutated.
func Merged(id int, ov *models.Override) (models.Puzzle, bool) {
	p, ok := Get(id)
	if !ok {
		return models.Puzzle{}, false
	}
	if ov == nil {
		return p, true
	}
	if ov.Location != nil {
		p.Location = *ov.Location
	}
	if ov.Prompt != nil {
		p.Prompt = *ov.Prompt
	}
	if ov.Answer != nil {
		p.Answer = *ov.Answer
	}
	return p, true
}

// ByBranch returns the branch's puzzles sorted by ascending step. Every
// prerequisite check downstream depends on this ordering.
func ByBranch(code string) []models.Puzzle {
	var out []models.Puzzle
	for _, p := range puzzles {
		if p.Branch == code {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out
}

// At returns the puzzle at a given step of a branch.
func At(code string, step int) (models.Puzzle, bool) {
	for _, p := range puzzles {
		if p.Branch == code && p.Step == step {
			return p, true
		}
	}
	return models.Puzzle{}, false
}

// Branches returns all branches in canonical order (F, M, D, B).
func Branches() []models.Branch {
	out := make([]models.Branch, len(branches))
	copy(out, branches)
	return out
}

// Branch returns the branch for a code.
func Branch(code string) (models.Branch, bool) {
	for _, b := range branches {
		if b.Code == code {
			return b, true
		}
	}
	return models.Branch{}, false
}

// FinalStep reports whether the puzzle is the last step of its branch.
func FinalStep(p models.Puzzle) bool {
	return p.Step == StepsPerBranch
}

// All returns every catalog entry, ordered by id.
func All() []models.Puzzle {
	out := make([]models.Puzzle, len(puzzles))
	copy(out, puzzles)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Size returns the total number of puzzles.
func Size() int {
	return len(puzzles)
}
