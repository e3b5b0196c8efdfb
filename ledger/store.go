// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NotThird/MidnightVault/auth"
	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrUnknownBranch       = errors.New("unknown branch")
	ErrUnknownPuzzle       = errors.New("unknown puzzle")
)

// Store is the authoritative record of who solved what, plus the durable
// completion flags, scalar values, and overrides. All mutations go through
// transactions; first-solve detection is additionally serialized by an
// in-process mutex per puzzle id (see RecordSolve).
type Store struct {
	db *sql.DB

	mu    sync.Mutex // guards locks
	locks map[int]*sync.Mutex
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		locks: make(map[int]*sync.Mutex),
	}
}

// puzzleLock returns the mutex serializing writes for one puzzle id.
func (s *Store) puzzleLock(puzzleID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[puzzleID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[puzzleID] = l
	}
	return l
}

// CreateParticipant registers a new player and mints their bearer token.
func (s *Store) CreateParticipant(nickname string) (models.Participant, error) {
	token, err := auth.GeneratePlayerToken()
	if err != nil {
		return models.Participant{}, err
	}

	id := uuid.NewString()
	if nickname == "" {
		nickname = "Sleuth-" + id[:4]
	}

	p := models.Participant{
		ID:        id,
		Nickname:  nickname,
		Token:     token,
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(`
		INSERT INTO participant (id, nickname, token, created_at)
		VALUES ($1, $2, $3, $4)
	`, p.ID, p.Nickname, p.Token, p.CreatedAt)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to insert participant: %w", err)
	}

	return p, nil
}

// ParticipantByToken resolves a bearer token to a participant.
func (s *Store) ParticipantByToken(token string) (models.Participant, error) {
	var p models.Participant
	err := s.db.QueryRow(`
		SELECT id, nickname, token, created_at
		FROM participant
		WHERE token = $1
	`, token).Scan(&p.ID, &p.Nickname, &p.Token, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, nil
}

// SetNickname renames a participant.
func (s *Store) SetNickname(participantID, nickname string) error {
	res, err := s.db.Exec(`
		UPDATE participant SET nickname = $1 WHERE id = $2
	`, nickname, participantID)
	if err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// Value reads a named scalar. Missing names read as the empty string.
func (s *Store) Value(name string) (string, error) {
	var v string
	err := s.db.QueryRow(`
		SELECT value FROM scalar_value WHERE name = $1
	`, name).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query scalar %q: %w", name, err)
	}
	return v, nil
}

// SetValue writes a named scalar, overwriting any prior value.
func (s *Store) SetValue(name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO scalar_value (name, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, name, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set scalar %q: %w", name, err)
	}
	return nil
}

// SeedValue writes a named scalar only if it does not exist yet. Used at
// startup so a configured default never clobbers a runtime change.
func (s *Store) SeedValue(name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO scalar_value (name, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`, name, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed scalar %q: %w", name, err)
	}
	return nil
}

// Override returns the override row for a puzzle, or nil if none exists.
func (s *Store) Override(puzzleID int) (*models.Override, error) {
	var ov models.Override
	err := s.db.QueryRow(`
		SELECT puzzle_id, location, prompt, answer, updated_at
		FROM puzzle_override
		WHERE puzzle_id = $1
	`, puzzleID).Scan(&ov.PuzzleID, &ov.Location, &ov.Prompt, &ov.Answer, &ov.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query override: %w", err)
	}
	return &ov, nil
}

// SetOverride creates or replaces the override row for a puzzle. Override
// answers are normalized here, at write time, so reads never re-normalize.
func (s *Store) SetOverride(puzzleID int, location, prompt, answer *string) error {
	if _, ok := catalog.Get(puzzleID); !ok {
		return ErrUnknownPuzzle
	}
	if answer != nil {
		n := catalog.NormalizeAnswer(*answer)
		answer = &n
	}
	_, err := s.db.Exec(`
		INSERT INTO puzzle_override (puzzle_id, location, prompt, answer, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (puzzle_id) DO UPDATE SET
			location = excluded.location,
			prompt = excluded.prompt,
			answer = excluded.answer,
			updated_at = excluded.updated_at
	`, puzzleID, location, prompt, answer, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set override: %w", err)
	}
	return nil
}

// ClearOverride deletes the override row, restoring all catalog defaults.
func (s *Store) ClearOverride(puzzleID int) error {
	_, err := s.db.Exec(`
		DELETE FROM puzzle_override WHERE puzzle_id = $1
	`, puzzleID)
	if err != nil {
		return fmt.Errorf("failed to clear override: %w", err)
	}
	return nil
}
