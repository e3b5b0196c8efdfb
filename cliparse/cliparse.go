package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AdminSecret       string
	PermutationKey    string
	VaultOverrideCode string
}

// DefaultPermutationKey seeds the scalar store on first initialization.
// Runtime changes go through the scalar store, not this value.
const DefaultPermutationKey = "26153478"

// ParseFlags validates flags and sets defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("midnightvault", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminSecret, "admin-secret", "", "Shared admin secret (prefer env)")
	fs.StringVar(&cfg.PermutationKey, "permutation-key", "", "Default vault permutation key")
	fs.StringVar(&cfg.VaultOverrideCode, "vault-override", "", "Operator override vault code")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 2374 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "midnightvault.db"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	}
	if cfg.AdminSecret == "" {
		return Config{}, errors.New("ADMIN_SECRET required")
	}

	if cfg.PermutationKey == "" {
		cfg.PermutationKey = os.Getenv("PERMUTATION_KEY")
	}
	if cfg.PermutationKey == "" {
		cfg.PermutationKey = DefaultPermutationKey
	}

	if cfg.VaultOverrideCode == "" {
		cfg.VaultOverrideCode = os.Getenv("VAULT_OVERRIDE_CODE")
	}

	return cfg, nil
}
