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
)

type ParticipantHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewParticipantHandler(store *ledger.Store, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{store: store, cfg: cfg}
}

// Register handles POST /participants
// Creates a participant and mints their bearer token. The presentation
// layer turns the token into a cookie; a visitor without a valid token
// registers again and simply starts a fresh identity.
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Nickname != "" && (len(req.Nickname) < 2 || len(req.Nickname) > 50) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname must be 2-50 characters")
		return
	}

	p, err := h.store.CreateParticipant(req.Nickname)
	if err != nil {
		slog.Error("failed to create participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("participant registered", "participant_id", p.ID, "nickname", p.Nickname)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		ParticipantID: p.ID,
		Nickname:      p.Nickname,
		Token:         p.Token,
	})
}

// SetNickname handles PUT /participants/me/nickname
func (h *ParticipantHandler) SetNickname(w http.ResponseWriter, r *http.Request) {
	p, ok := requireParticipant(w, r, h.store)
	if !ok {
		return
	}

	var req models.SetNicknameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Nickname) < 2 || len(req.Nickname) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname must be 2-50 characters")
		return
	}

	if err := h.store.SetNickname(p.ID, req.Nickname); err != nil {
		slog.Error("failed to set nickname", "error", err, "participant_id", p.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set nickname")
		return
	}

	slog.Info("nickname changed", "participant_id", p.ID, "nickname", req.Nickname)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"nickname": req.Nickname,
	})
}

// requireParticipant resolves the X-Player-Token header or writes a 401.
func requireParticipant(w http.ResponseWriter, r *http.Request, store *ledger.Store) (models.Participant, bool) {
	token := r.Header.Get("X-Player-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Player-Token header required")
		return models.Participant{}, false
	}

	// Format check first: a malformed token never reaches the database
	if err := auth.ValidateTokenFormat(token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid player token")
		return models.Participant{}, false
	}

	p, err := store.ParticipantByToken(token)
	if err == ledger.ErrParticipantNotFound {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid player token")
		return models.Participant{}, false
	}
	if err != nil {
		slog.Error("failed to resolve player token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Participant{}, false
	}

	return p, true
}

// optionalParticipant resolves the X-Player-Token header if present and
// valid; an absent or stale token just means an anonymous view.
func optionalParticipant(r *http.Request, store *ledger.Store) *models.Participant {
	token := r.Header.Get("X-Player-Token")
	if token == "" {
		return nil
	}
	p, err := store.ParticipantByToken(token)
	if err != nil {
		return nil
	}
	return &p
}
