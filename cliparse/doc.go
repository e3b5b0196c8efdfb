// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses configuration from CLI flags and environment.

# Precedence

CLI flags win over environment variables; environment variables win over
defaults. main loads a .env file (via godotenv) before parsing, so .env
entries behave like environment variables.

# Settings

Required:

  - ADMIN_SECRET (--admin-secret): shared secret for admin endpoints

Optional:

  - PORT (-p): server port (default 2374)
  - DATABASE_URL (-d): postgres URL or sqlite file path (default midnightvault.db)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PERMUTATION_KEY (--permutation-key): seed for the vault permutation key
    (default "26153478"); runtime rotation goes through the scalar store
  - VAULT_OVERRIDE_CODE (--vault-override): operator escape-hatch code
*/
package cliparse
