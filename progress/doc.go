// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package progress composes read-only aggregation views over the ledger.

# Snapshot

Build assembles everything a status page or dashboard needs in one shape:
global solved count and percentage, per-branch step booleans and state,
completed branches, hub/vault unlock booleans, the current digit string,
the contributor leaderboard, and a humanized recent-activity feed.

	snap, err := progress.Build(store, participant) // participant may be nil

No function here mutates anything; snapshots are safe to poll every few
seconds.

# Milestones

Hub unlocks at 2 complete branches, the vault at 4 (all of them). Both are
plain counts over completion flags, recomputed per call.

# Hint Visibility

HintVisible implements progressive disclosure of location hints: step 1
always, otherwise only once the puzzle itself or its predecessor has been
solved globally.
*/
package progress
