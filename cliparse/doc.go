// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:polls.db)
  - AdminKey: Secret for the admin API (required)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-admin-key  Admin API key
	-log-level  Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → -admin-key
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.
*/
package cliparse
