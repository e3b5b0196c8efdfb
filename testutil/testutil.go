// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/db"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/models"
)

// SetupTestDB creates a fresh sqlite database in a per-test temp dir with
// the full schema. The file vanishes with the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "midnightvault_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Single connection: sqlite rejects concurrent writers otherwise
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore builds a ledger.Store over a fresh test database and
// seeds the default permutation key, mirroring main's startup.
func SetupTestStore(t *testing.T) (*ledger.Store, *sql.DB) {
	t.Helper()

	conn := SetupTestDB(t)
	store := ledger.NewStore(conn)
	if err := store.SeedValue(models.ScalarPermutationKey, cliparse.DefaultPermutationKey); err != nil {
		t.Fatalf("Failed to seed permutation key: %v", err)
	}
	return store, conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              2374,
		DatabaseType:      "sqlite",
		AdminSecret:       "test-admin-secret",
		PermutationKey:    cliparse.DefaultPermutationKey,
		VaultOverrideCode: "995511",
	}
}

// CreateTestParticipant registers a participant and returns it (with token)
func CreateTestParticipant(t *testing.T, store *ledger.Store, nickname string) models.Participant {
	t.Helper()

	p, err := store.CreateParticipant(nickname)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
	return p
}

// SolveBranch records solves for every step of a branch as the given
// participant and sets the completion flag, the way a real playthrough
// would.
func SolveBranch(t *testing.T, store *ledger.Store, participantID, branch string) {
	t.Helper()

	for _, pz := range catalog.ByBranch(branch) {
		if _, err := store.RecordSolve(participantID, pz.ID); err != nil {
			t.Fatalf("Failed to solve puzzle %d: %v", pz.ID, err)
		}
	}
	if _, err := store.CompleteBranch(branch); err != nil {
		t.Fatalf("Failed to complete branch %s: %v", branch, err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
