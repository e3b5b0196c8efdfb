// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/middleware"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/progress"
	"github.com/NotThird/MidnightVault/vault"
)

type StatusHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewStatusHandler(store *ledger.Store, cfg cliparse.Config) *StatusHandler {
	return &StatusHandler{store: store, cfg: cfg}
}

// GetStatus handles GET /status
// Read-only aggregate state, safe to poll every few seconds. With a valid
// X-Player-Token the snapshot includes that player's personal solved set.
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	p := optionalParticipant(r, h.store)

	snap, err := progress.Build(h.store, p)
	if err != nil {
		slog.Error("failed to build snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}

// OpenVault handles POST /vault/open
// Checks a submitted code against the computed vault code and the operator
// override code. Always 200 with a correct boolean; an uncomputable code
// (branches incomplete or permutation key invalid) just never matches.
func (h *StatusHandler) OpenVault(w http.ResponseWriter, r *http.Request) {
	var req models.OpenVaultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	completed, err := h.store.CompletedBranches()
	if err != nil {
		slog.Error("failed to list completed branches", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	key, err := h.store.Value(models.ScalarPermutationKey)
	if err != nil {
		slog.Error("failed to read permutation key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	res := vault.Compute(completed, key)
	correct := vault.CodeMatches(req.Code, res.Code, h.cfg.VaultOverrideCode)

	slog.Info("vault attempt",
		"correct", correct,
		"completed_branches", len(completed),
		"remote", middleware.GetClientIP(r),
	)

	middleware.JSONResponse(w, http.StatusOK, models.OpenVaultResponse{
		Correct: correct,
	})
}
