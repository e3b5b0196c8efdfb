// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/testutil"
)

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Secret": "test-admin-secret"}
}

func TestAdminRequiresSecret(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	calls := []struct {
		name string
		do   func(w http.ResponseWriter, r *http.Request)
		req  *http.Request
	}{
		{"status", h.GetStatus, testutil.MakeRequest("GET", "/admin/status", nil, nil)},
		{"reset", h.Reset, testutil.MakeRequest("POST", "/admin/reset", nil, nil)},
		{"solve-all", h.SolveAll, testutil.MakeRequest("POST", "/admin/solve-all", nil, nil)},
		{"swap", h.SwapSolves, testutil.MakeRequest("POST", "/admin/swap",
			models.SwapSolvesRequest{PuzzleA: 1, PuzzleB: 2}, nil)},
	}

	for _, tt := range calls {
		t.Run(tt.name+" no secret", func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.do(w, tt.req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}

	// Wrong secret is just as dead
	req := testutil.MakeRequest("GET", "/admin/status", nil,
		map[string]string{"X-Admin-Secret": "wrong"})
	w := httptest.NewRecorder()
	h.GetStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestAdminGetStatus(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	p := testutil.CreateTestParticipant(t, store, "Ada")
	for _, b := range []string{"F", "M", "D", "B"} {
		testutil.SolveBranch(t, store, p.ID, b)
	}

	req := testutil.MakeRequest("GET", "/admin/status", nil, adminHeaders())
	w := httptest.NewRecorder()
	h.GetStatus(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Vault struct {
			Digits   string `json:"digits"`
			Permuted string `json:"permuted"`
			Code     string `json:"code"`
		} `json:"vault"`
		PermutationKey string `json:"permutation_key"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Vault.Digits != "41820953" {
		t.Errorf("digits = %s, want 41820953", resp.Vault.Digits)
	}
	if resp.Vault.Code != "194082" {
		t.Errorf("code = %s, want 194082", resp.Vault.Code)
	}
	if resp.PermutationKey != "26153478" {
		t.Errorf("permutation key = %s, want 26153478", resp.PermutationKey)
	}
}

func TestAdminSetAndClearOverride(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	loc := "Moved to the pantry"
	req := testutil.MakeRequest("PUT", "/admin/puzzles/1/override",
		models.SetOverrideRequest{Location: &loc}, adminHeaders())
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.SetOverride(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var ov models.Override
	testutil.AssertJSON(t, w, &ov)
	if ov.Location == nil || *ov.Location != loc {
		t.Errorf("override location = %v, want %q", ov.Location, loc)
	}

	req = testutil.MakeRequest("DELETE", "/admin/puzzles/1/override", nil, adminHeaders())
	req.SetPathValue("id", "1")
	w = httptest.NewRecorder()
	h.ClearOverride(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	got, err := store.Override(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("override survives clearing: %+v", got)
	}
}

func TestAdminSetOverrideUnknownPuzzle(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	loc := "Nowhere"
	req := testutil.MakeRequest("PUT", "/admin/puzzles/99/override",
		models.SetOverrideRequest{Location: &loc}, adminHeaders())
	req.SetPathValue("id", "99")
	w := httptest.NewRecorder()
	h.SetOverride(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAdminSetValue(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("PUT", "/admin/values/permutation_key",
		models.SetValueRequest{Value: "87654321"}, adminHeaders())
	req.SetPathValue("name", "permutation_key")
	w := httptest.NewRecorder()
	h.SetValue(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	v, err := store.Value(models.ScalarPermutationKey)
	if err != nil {
		t.Fatal(err)
	}
	if v != "87654321" {
		t.Errorf("permutation key = %s, want 87654321", v)
	}
}

func TestAdminSetValueRejectsBadPermutationKey(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	for _, bad := range []string{"26153477", "2615347", "abcdefgh", ""} {
		req := testutil.MakeRequest("PUT", "/admin/values/permutation_key",
			models.SetValueRequest{Value: bad}, adminHeaders())
		req.SetPathValue("name", "permutation_key")
		w := httptest.NewRecorder()
		h.SetValue(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}

	// The validation is specific to the permutation key
	req := testutil.MakeRequest("PUT", "/admin/values/banner",
		models.SetValueRequest{Value: "anything goes"}, adminHeaders())
	req.SetPathValue("name", "banner")
	w := httptest.NewRecorder()
	h.SetValue(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestAdminReset(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	p := testutil.CreateTestParticipant(t, store, "Ada")
	testutil.SolveBranch(t, store, p.ID, "F")

	req := testutil.MakeRequest("POST", "/admin/reset", nil, adminHeaders())
	w := httptest.NewRecorder()
	h.Reset(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	count, err := store.GlobalSolveCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("solve count after reset = %d, want 0", count)
	}

	v, err := store.Value(models.ScalarPermutationKey)
	if err != nil {
		t.Fatal(err)
	}
	if v == "" {
		t.Error("permutation key should survive a reset")
	}
}

func TestAdminSolveAll(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/admin/solve-all", nil, adminHeaders())
	w := httptest.NewRecorder()
	h.SolveAll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		ParticipantID  string   `json:"participant_id"`
		NewlyCompleted []string `json:"newly_completed"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.ParticipantID == "" {
		t.Error("solve-all should report the synthetic participant")
	}
	if len(resp.NewlyCompleted) != 4 {
		t.Errorf("newly completed = %v, want all 4 branches", resp.NewlyCompleted)
	}

	completed, err := store.CompletedBranches()
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 4 {
		t.Errorf("completed branches = %v, want all 4", completed)
	}
}

func TestAdminSwapSolves(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	h := NewAdminHandler(store, testutil.GetTestConfig())

	p := testutil.CreateTestParticipant(t, store, "Ada")
	if _, err := store.RecordSolve(p.ID, 1); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("POST", "/admin/swap",
		models.SwapSolvesRequest{PuzzleA: 1, PuzzleB: 2}, adminHeaders())
	w := httptest.NewRecorder()
	h.SwapSolves(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	mine, err := store.SolvedByParticipant(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if mine[1] || !mine[2] {
		t.Errorf("after swap solved = %v, want {2}", mine)
	}

	// Unknown puzzle in the pair
	req = testutil.MakeRequest("POST", "/admin/swap",
		models.SwapSolvesRequest{PuzzleA: 1, PuzzleB: 99}, adminHeaders())
	w = httptest.NewRecorder()
	h.SwapSolves(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
