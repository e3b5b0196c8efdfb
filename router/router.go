// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/handlers"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/middleware"
)

func NewRouter(store *ledger.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	participantHandler := handlers.NewParticipantHandler(store, cfg)
	playHandler := handlers.NewPlayHandler(store, cfg)
	statusHandler := handlers.NewStatusHandler(store, cfg)
	adminHandler := handlers.NewAdminHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Participants
	mux.HandleFunc("POST /participants", middleware.WithLogging(participantHandler.Register))
	mux.HandleFunc("PUT /participants/me/nickname", middleware.WithLogging(participantHandler.SetNickname))

	// Play (public, token-identified)
	mux.HandleFunc("GET /puzzles/{id}", middleware.WithLogging(playHandler.GetPuzzle))
	mux.HandleFunc("POST /puzzles/{id}/submit", middleware.WithLogging(playHandler.Submit))

	// Progress and vault
	mux.HandleFunc("GET /status", middleware.WithLogging(statusHandler.GetStatus))
	mux.HandleFunc("POST /vault/open", middleware.WithLogging(statusHandler.OpenVault))

	// Admin operations (X-Admin-Secret)
	mux.HandleFunc("GET /admin/status", middleware.WithLogging(adminHandler.GetStatus))
	mux.HandleFunc("PUT /admin/puzzles/{id}/override", middleware.WithLogging(adminHandler.SetOverride))
	mux.HandleFunc("DELETE /admin/puzzles/{id}/override", middleware.WithLogging(adminHandler.ClearOverride))
	mux.HandleFunc("PUT /admin/values/{name}", middleware.WithLogging(adminHandler.SetValue))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))
	mux.HandleFunc("POST /admin/solve-all", middleware.WithLogging(adminHandler.SolveAll))
	mux.HandleFunc("POST /admin/swap", middleware.WithLogging(adminHandler.SwapSolves))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("midnightvault API v1"))
	})

	return mux
}
