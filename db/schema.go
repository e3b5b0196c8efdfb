// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL sticks to the dialect intersection of SQLite and PostgreSQL;
// timestamps are always supplied by the application, never by the database.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_participant_token ON participant(token);

-- Solves: append-only, at most one row per (participant, puzzle)
CREATE TABLE IF NOT EXISTS solve (
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    puzzle_id INTEGER NOT NULL,
    solved_at TIMESTAMP NOT NULL,
    PRIMARY KEY (participant_id, puzzle_id)
);

CREATE INDEX IF NOT EXISTS idx_solve_puzzle_id ON solve(puzzle_id);
CREATE INDEX IF NOT EXISTS idx_solve_solved_at ON solve(solved_at);

-- Branch completion flags: one row per branch, set exactly once
CREATE TABLE IF NOT EXISTS completion_flag (
    branch TEXT PRIMARY KEY,
    unlocked_at TIMESTAMP NOT NULL
);

-- Named runtime configuration (currently the permutation key)
CREATE TABLE IF NOT EXISTS scalar_value (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Admin-authored puzzle overrides; NULL fields fall back to the catalog
CREATE TABLE IF NOT EXISTS puzzle_override (
    puzzle_id INTEGER PRIMARY KEY,
    location TEXT,
    prompt TEXT,
    answer TEXT,
    updated_at TIMESTAMP NOT NULL
);
`
