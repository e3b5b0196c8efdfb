// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NotThird/MidnightVault/catalog"
	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/middleware"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/progress"
)

type PlayHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewPlayHandler(store *ledger.Store, cfg cliparse.Config) *PlayHandler {
	return &PlayHandler{store: store, cfg: cfg}
}

// GetPuzzle handles GET /puzzles/{id}
// Returns the participant-facing puzzle view: prompt always, location only
// when the progressive-disclosure rule allows, never the answer.
func (h *PlayHandler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzleID, ok := parsePuzzleID(w, r)
	if !ok {
		return
	}

	ov, err := h.store.Override(puzzleID)
	if err != nil {
		slog.Error("failed to load override", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pz, found := catalog.Merged(puzzleID, ov)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	solved, err := h.store.GloballySolved()
	if err != nil {
		slog.Error("failed to load solved set", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	unlocked, err := h.store.StepUnlocked(pz)
	if err != nil {
		slog.Error("failed to check step gate", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	branch, _ := catalog.Branch(pz.Branch)
	view := models.PuzzleView{
		ID:             pz.ID,
		Branch:         pz.Branch,
		BranchName:     branch.Name,
		Step:           pz.Step,
		Prompt:         pz.Prompt,
		Locked:         !unlocked,
		SolvedGlobally: solved[pz.ID],
	}

	if progress.HintVisible(pz, solved) {
		view.Location = pz.Location
	} else {
		view.LocationHidden = true
	}

	if p := optionalParticipant(r, h.store); p != nil {
		mine, err := h.store.SolvedByParticipant(p.ID)
		if err != nil {
			slog.Error("failed to load personal solves", "error", err, "participant_id", p.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		view.SolvedByYou = mine[pz.ID]
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// Submit handles POST /puzzles/{id}/submit
// Outcomes, in check order: locked (prerequisite step unsolved globally,
// rejected before answer checking), incorrect, already_solved, and
// solved/first_solve. A first solve of a branch's final step sets the
// branch completion flag; the response flags report only transitions this
// call caused, so celebration UI never double-fires.
func (h *PlayHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := requireParticipant(w, r, h.store)
	if !ok {
		return
	}

	puzzleID, ok := parsePuzzleID(w, r)
	if !ok {
		return
	}

	ov, err := h.store.Override(puzzleID)
	if err != nil {
		slog.Error("failed to load override", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pz, found := catalog.Merged(puzzleID, ov)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Gate check comes before answer checking: a locked step rejects even
	// a correct answer, and the two must be distinguishable UI states.
	unlocked, err := h.store.StepUnlocked(pz)
	if err != nil {
		slog.Error("failed to check step gate", "error", err, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !unlocked {
		middleware.JSONResponse(w, http.StatusConflict, models.SubmitAnswerResponse{
			Outcome: models.OutcomeLocked,
			Branch:  pz.Branch,
		})
		return
	}

	if catalog.NormalizeAnswer(req.Answer) != pz.Answer {
		middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswerResponse{
			Outcome: models.OutcomeIncorrect,
			Branch:  pz.Branch,
		})
		return
	}

	result, err := h.store.RecordSolve(p.ID, puzzleID)
	if err != nil {
		slog.Error("failed to record solve", "error", err, "participant_id", p.ID, "puzzle_id", puzzleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record solve")
		return
	}

	if result.AlreadySolved {
		middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswerResponse{
			Outcome: models.OutcomeAlreadySolved,
			Branch:  pz.Branch,
		})
		return
	}

	resp := models.SubmitAnswerResponse{
		Outcome: models.OutcomeSolved,
		Branch:  pz.Branch,
	}
	if result.IsFirst {
		resp.Outcome = models.OutcomeFirstSolve
	}

	// Any successful solve of a final step attempts the completion flag;
	// the flag-not-present guard in CompleteBranch keeps it exactly-once.
	if catalog.FinalStep(pz) {
		completedNow, err := h.store.CompleteBranch(pz.Branch)
		if err != nil {
			slog.Error("failed to set completion flag", "error", err, "branch", pz.Branch)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record solve")
			return
		}
		if completedNow {
			resp.BranchCompleted = true

			completed, err := h.store.CompletedBranches()
			if err != nil {
				slog.Error("failed to list completed branches", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record solve")
				return
			}
			// One branch completes at a time, so crossing a threshold
			// means landing exactly on it.
			resp.HubUnlocked = len(completed) == progress.HubThreshold
			resp.VaultUnlocked = len(completed) == progress.VaultThreshold

			slog.Info("branch completed",
				"branch", pz.Branch,
				"completed_count", len(completed),
				"participant_id", p.ID,
			)
		}
	}

	slog.Info("solve recorded",
		"participant_id", p.ID,
		"puzzle_id", puzzleID,
		"is_first", result.IsFirst,
		"remote", middleware.GetClientIP(r),
	)

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// parsePuzzleID reads the {id} path value. A non-numeric id is a bad
// request; an unknown-but-numeric id is handled later as not found.
func parsePuzzleID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "puzzle id is required")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "puzzle id must be numeric")
		return 0, false
	}
	return id, true
}
