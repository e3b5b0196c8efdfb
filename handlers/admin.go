// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/NotThird/MidnightVault/auth"
	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/middleware"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/progress"
	"github.com/NotThird/MidnightVault/vault"
)

type AdminHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewAdminHandler(store *ledger.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, cfg: cfg}
}

// authorized validates the X-Admin-Secret header or writes a 401.
func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminSecret(r.Header.Get("X-Admin-Secret"), h.cfg.AdminSecret); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin secret")
		return false
	}
	return true
}

// GetStatus handles GET /admin/status
// The public snapshot plus the parts players must not see: the full vault
// computation (digits, permuted string, code) and the permutation key.
func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	snap, err := progress.Build(h.store, nil)
	if err != nil {
		slog.Error("failed to build snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	key, err := h.store.Value(models.ScalarPermutationKey)
	if err != nil {
		slog.Error("failed to read permutation key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"snapshot":        snap,
		"vault":           vault.Compute(snap.CompletedBranches, key),
		"permutation_key": key,
	})
}

// SetOverride handles PUT /admin/puzzles/{id}/override
// Creates or replaces the override row. Omitted fields stay on the catalog
// default; clearing a single field back to default means re-sending the
// override without it.
func (h *AdminHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	puzzleID, ok := parsePuzzleID(w, r)
	if !ok {
		return
	}

	var req models.SetOverrideRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.SetOverride(puzzleID, req.Location, req.Prompt, req.Answer)
	if err == ledger.ErrUnknownPuzzle {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}
	if err != nil {
		slog.Error("failed to set override", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set override")
		return
	}

	ov, err := h.store.Override(puzzleID)
	if err != nil {
		slog.Error("failed to read back override", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("override set", "puzzle_id", puzzleID)

	middleware.JSONResponse(w, http.StatusOK, ov)
}

// ClearOverride handles DELETE /admin/puzzles/{id}/override
// Deleting the row restores every catalog default for the puzzle.
func (h *AdminHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	puzzleID, ok := parsePuzzleID(w, r)
	if !ok {
		return
	}

	if err := h.store.ClearOverride(puzzleID); err != nil {
		slog.Error("failed to clear override", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear override")
		return
	}

	slog.Info("override cleared", "puzzle_id", puzzleID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Override cleared",
	})
}

// SetValue handles PUT /admin/values/{name}
// Writes a named scalar. The permutation key gets validated here so a typo
// can't silently make the vault code uncomputable.
func (h *AdminHandler) SetValue(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value name is required")
		return
	}

	var req models.SetValueRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if name == models.ScalarPermutationKey && !vault.ValidKey(req.Value) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "permutation key must be a permutation of 1-8")
		return
	}

	if err := h.store.SetValue(name, req.Value); err != nil {
		slog.Error("failed to set value", "error", err, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set value")
		return
	}

	slog.Info("scalar value set", "name", name)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"name":  name,
		"value": req.Value,
	})
}

// Reset handles POST /admin/reset
// Clears all solves, participants, and completion flags. The permutation
// key (and any other scalar) survives.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if err := h.store.Reset(); err != nil {
		slog.Error("failed to reset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset")
		return
	}

	slog.Info("game reset")

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "All progress cleared",
	})
}

// SolveAll handles POST /admin/solve-all
// Testing aid: solves every puzzle as a synthetic participant, firing the
// same completion transitions a real playthrough would.
func (h *AdminHandler) SolveAll(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	p, newlyCompleted, err := h.store.ForceSolveAll("Gamemaster")
	if err != nil {
		slog.Error("failed to force-solve", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to force-solve")
		return
	}

	slog.Info("force-solved all puzzles", "participant_id", p.ID, "newly_completed", newlyCompleted)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"participant_id":  p.ID,
		"newly_completed": newlyCompleted,
	})
}

// SwapSolves handles POST /admin/swap
// Corrective tool for two QR codes printed on swapped cards: relabels all
// solves of puzzle_a as puzzle_b and vice versa.
func (h *AdminHandler) SwapSolves(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.SwapSolvesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.SwapSolves(req.PuzzleA, req.PuzzleB)
	if err == ledger.ErrUnknownPuzzle {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}
	if err != nil {
		slog.Error("failed to swap solves", "error", err, "puzzle_a", req.PuzzleA, "puzzle_b", req.PuzzleB)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to swap solves")
		return
	}

	slog.Info("solves swapped", "puzzle_a", req.PuzzleA, "puzzle_b", req.PuzzleB)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Solves swapped",
	})
}
