// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/progress"
	"github.com/NotThird/MidnightVault/testutil"
)

func TestRoutes(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	mux := NewRouter(store, testutil.GetTestConfig())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"health", "GET", "/health", http.StatusOK},
		{"root", "GET", "/", http.StatusOK},
		{"status", "GET", "/status", http.StatusOK},
		{"puzzle by id", "GET", "/puzzles/1", http.StatusOK},
		{"puzzle non-numeric id", "GET", "/puzzles/abc", http.StatusBadRequest},
		{"submit without token", "POST", "/puzzles/1/submit", http.StatusUnauthorized},
		{"nickname without token", "PUT", "/participants/me/nickname", http.StatusUnauthorized},
		{"admin status without secret", "GET", "/admin/status", http.StatusUnauthorized},
		{"admin reset without secret", "POST", "/admin/reset", http.StatusUnauthorized},
		{"method mismatch", "DELETE", "/status", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

// TestFullPlaythrough walks the whole party through the API: register,
// solve all four branches in order, watch the hub and vault unlock, read
// the code off the admin console, and open the vault.
func TestFullPlaythrough(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	mux := NewRouter(store, testutil.GetTestConfig())

	do := func(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest(method, path, body, headers)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Register a participant
	w := do("POST", "/participants", models.RegisterRequest{Nickname: "Ada"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var reg models.RegisterResponse
	testutil.AssertJSON(t, w, &reg)

	playerHeaders := map[string]string{"X-Player-Token": reg.Token}
	adminHeaders := map[string]string{"X-Admin-Secret": "test-admin-secret"}

	// The vault refuses the real code before anything is solved
	w = do("POST", "/vault/open", models.OpenVaultRequest{Code: "194082"}, nil)
	var attempt models.OpenVaultResponse
	testutil.AssertJSON(t, w, &attempt)
	if attempt.Correct {
		t.Fatal("vault opened before any branch completed")
	}

	// Solve every branch in canonical order, step by step
	var last models.SubmitAnswerResponse
	for _, b := range catalog.Branches() {
		for _, pz := range catalog.ByBranch(b.Code) {
			w = do("POST", "/puzzles/"+strconv.Itoa(pz.ID)+"/submit",
				models.SubmitAnswerRequest{Answer: pz.Answer}, playerHeaders)
			testutil.AssertStatus(t, w, http.StatusCreated)
			testutil.AssertJSON(t, w, &last)
		}
		if !last.BranchCompleted {
			t.Fatalf("branch %s final step did not complete the branch", b.Code)
		}
	}
	if !last.VaultUnlocked {
		t.Error("final branch completion should unlock the vault")
	}

	// The public snapshot agrees
	w = do("GET", "/status", nil, playerHeaders)
	testutil.AssertStatus(t, w, http.StatusOK)
	var snap progress.Snapshot
	testutil.AssertJSON(t, w, &snap)
	if !snap.HubUnlocked || !snap.VaultUnlocked {
		t.Errorf("snapshot unlocks = hub %v vault %v, want both", snap.HubUnlocked, snap.VaultUnlocked)
	}
	if snap.Digits != "41820953" {
		t.Errorf("snapshot digits = %q, want 41820953", snap.Digits)
	}
	if snap.Personal == nil || snap.Personal.SolvedCount != 12 {
		t.Errorf("personal snapshot = %+v, want 12 solves", snap.Personal)
	}

	// The gamemaster reads the code off the admin console
	w = do("GET", "/admin/status", nil, adminHeaders)
	testutil.AssertStatus(t, w, http.StatusOK)
	var admin struct {
		Vault struct {
			Code string `json:"code"`
		} `json:"vault"`
	}
	testutil.AssertJSON(t, w, &admin)
	if admin.Vault.Code != "194082" {
		t.Fatalf("admin vault code = %q, want 194082", admin.Vault.Code)
	}

	// And the vault opens
	w = do("POST", "/vault/open", models.OpenVaultRequest{Code: admin.Vault.Code}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &attempt)
	if !attempt.Correct {
		t.Error("computed code should open the vault")
	}

	// The operator override works regardless
	w = do("POST", "/vault/open", models.OpenVaultRequest{Code: "995511"}, nil)
	testutil.AssertJSON(t, w, &attempt)
	if !attempt.Correct {
		t.Error("override code should open the vault")
	}
}

// TestPermutationKeyChange verifies a mid-game key rotation changes the
// computed code on the next query, with no stored code to go stale.
func TestPermutationKeyChange(t *testing.T) {
	store, conn := testutil.SetupTestStore(t)
	defer conn.Close()
	mux := NewRouter(store, testutil.GetTestConfig())

	adminHeaders := map[string]string{"X-Admin-Secret": "test-admin-secret"}

	p := testutil.CreateTestParticipant(t, store, "Ada")
	for _, b := range []string{"F", "M", "D", "B"} {
		testutil.SolveBranch(t, store, p.ID, b)
	}

	req := testutil.MakeRequest("PUT", "/admin/values/permutation_key",
		models.SetValueRequest{Value: "87654321"}, adminHeaders)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/admin/status", nil, adminHeaders)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var admin struct {
		Vault struct {
			Code string `json:"code"`
		} `json:"vault"`
	}
	testutil.AssertJSON(t, w, &admin)
	// "41820953" reversed is "35902814"; the code is its first six digits
	if admin.Vault.Code != "359028" {
		t.Errorf("code after key rotation = %q, want 359028", admin.Vault.Code)
	}

	req = testutil.MakeRequest("POST", "/vault/open",
		models.OpenVaultRequest{Code: "194082"}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var attempt models.OpenVaultResponse
	testutil.AssertJSON(t, w, &attempt)
	if attempt.Correct {
		t.Error("old code should stop working after key rotation")
	}
}
