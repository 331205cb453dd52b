// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads an optional .env file, then ParseFlags returns a Config:

	_ = cliparse.LoadEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or SQLite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - TokenSalt: Secret for user token HMAC (required)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)
  - RecordMode: accumulate or session (default: accumulate)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--token-salt    User token salt
	--log-level     Log level
	--log-format    Log format
	--record-mode   Tier counter mode

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	USER_TOKEN_SALT → --token-salt
	LOG_LEVEL       → --log-level
	LOG_FORMAT      → --log-format
	RECORD_MODE     → --record-mode

CLI flags take precedence over environment variables, and variables already
set in the process take precedence over the .env file.

# Validation

ParseFlags returns an error if DATABASE_URL or USER_TOKEN_SALT is missing, or
if any enumerated setting has an unknown value.
*/
package cliparse
