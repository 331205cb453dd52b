// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Nosh API server.

Nosh helps people cook at home more. It classifies a user's cooking
personality from a short quiz, shows how much home cooking saved compared
with eating out, and learns which price tier (good, better, best) the user
usually picks per ingredient category to pre-fill new baskets.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=nosh.db USER_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-salt ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - USER_TOKEN_SALT (--token-salt): Secret for user token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output
  - RECORD_MODE: accumulate or session tier counting

# Architecture

The server uses a handler-based architecture with dependency injection:

  - quiz, savings, smartdefaults: Domain logic
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, auth, JSON helpers
  - metrics: Prometheus collectors
  - models: Domain and request/response types
  - auth: User tokens and ID generation
  - db: Schema and queries
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
