// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/NotThird/MidnightVault/cliparse"
	"github.com/NotThird/MidnightVault/db"
	"github.com/NotThird/MidnightVault/ledger"
	"github.com/NotThird/MidnightVault/middleware"
	"github.com/NotThird/MidnightVault/models"
	"github.com/NotThird/MidnightVault/router"
)

func main() {
	var err error

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the configured store
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == "sqlite" {
		// One connection serializes writers; sqlite returns SQLITE_BUSY
		// otherwise, and a one-room party never needs more.
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Seed the permutation key default; a runtime value is never clobbered
	store := ledger.NewStore(dbConn)
	if err := store.SeedValue(models.ScalarPermutationKey, cfg.PermutationKey); err != nil {
		slog.Error("scalar seed failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "database_type", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
