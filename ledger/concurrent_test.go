// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger_test

import (
	"sync"
	"testing"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/testutil"
)

func TestConcurrentFirstSolveExclusive(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()

	const racers = 16

	participants := make([]string, racers)
	for i := range participants {
		p := testutil.CreateTestParticipant(t, store, "")
		participants[i] = p.ID
	}

	results := make([]ledger.SolveResult, racers)
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.RecordSolve(participants[i], 1)
		}(i)
	}
	wg.Wait()

	firsts := 0
	for i := 0; i < racers; i++ {
		if errs[i] != nil {
			t.Fatalf("racer %d: RecordSolve error = %v", i, errs[i])
		}
		if !results[i].Success {
			t.Errorf("racer %d: distinct participant should always get a solve", i)
		}
		if results[i].IsFirst {
			firsts++
		}
	}
	if firsts != 1 {
		t.Errorf("got %d first-solve results, want exactly 1", firsts)
	}
}

func TestConcurrentRepeatSubmissionsSingleRow(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()

	p := testutil.CreateTestParticipant(t, store, "Ada")

	// The same participant hammering the same puzzle from several tabs
	const attempts = 16
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.RecordSolve(p.ID, 1); err != nil {
				t.Errorf("RecordSolve error = %v", err)
			}
		}()
	}
	wg.Wait()

	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM solve WHERE participant_id = $1 AND puzzle_id = $2`, p.ID, 1).Scan(&count)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 solve row, got %d", count)
	}
}

func TestConcurrentCompleteBranchSingleTransition(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()

	p := testutil.CreateTestParticipant(t, store, "Ada")
	for _, pz := range catalog.ByBranch("D") {
		if _, err := store.RecordSolve(p.ID, pz.ID); err != nil {
			t.Fatal(err)
		}
	}

	const racers = 8
	set := make([]bool, racers)
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set[i], errs[i] = store.CompleteBranch("D")
		}(i)
	}
	wg.Wait()

	transitions := 0
	for i := 0; i < racers; i++ {
		if errs[i] != nil {
			t.Fatalf("racer %d: CompleteBranch error = %v", i, errs[i])
		}
		if set[i] {
			transitions++
		}
	}
	if transitions != 1 {
		t.Errorf("got %d completion transitions, want exactly 1", transitions)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM completion_flag WHERE branch = $1`, "D").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 completion_flag row, got %d", count)
	}
}
