// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL runs unchanged on both supported stores (modernc.org/sqlite and
PostgreSQL via lib/pq).

# Tables

  - participant: player identity, nickname, bearer token
  - solve: append-only ledger, PK (participant_id, puzzle_id)
  - completion_flag: one row per branch, written exactly once
  - scalar_value: named runtime configuration (permutation key)
  - puzzle_override: admin replacement fields per puzzle

# Relationships

	participant 1──* solve

The puzzle side of solve and puzzle_override references the compiled-in
catalog, not a table; puzzle ids are validated in application code.

# Reset Semantics

A full reset truncates participant, solve, and completion_flag (cascade
covers solves). scalar_value survives reset so the permutation key keeps
its value; overrides are admin content, not progress, and survive too.
*/
package db
