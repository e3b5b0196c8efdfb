// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the static puzzle catalog and answer normalization.

# Layout

Twelve puzzles in four branches of three steps each, ids in branch blocks:

	F (Fridge)  ids 1-3
	M (Mirror)  ids 4-6
	D (Den)     ids 7-9
	B (Balcony) ids 10-12

Each branch carries a fixed 2-digit vault reward (F=41, M=82, D=09, B=53).
The digits are configuration metadata assigned at authoring time; they are
not derived from puzzle content.

# Answer Comparison

NormalizeAnswer is the canonical transform applied to both stored answers
and submissions before equality is tested:

	catalog.NormalizeAnswer("  Grapes! ") == "GRAPES"

Case, whitespace, and punctuation are insignificant to correctness.

# Overrides

Admin overrides are stored elsewhere (see the ledger package) and merged at
read time:

	p, ok := catalog.Merged(id, override)

A nil override field falls back to the catalog default. The base catalog is
immutable; merging never writes to it.
*/
package catalog
