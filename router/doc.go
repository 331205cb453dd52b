// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Nosh API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg, metrics.Default())

The metrics argument must not be nil. It serves /metrics, records request
latency and observes quiz and smart default outcomes.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Users:

	POST /users    - Register, returns user_id and user_token
	GET  /users/me - Current user

Quiz (requires X-User-ID and X-User-Token):

	POST /quiz/score  - Score and store answers
	GET  /quiz/result - Latest result

Savings:

	POST /nosh-runs         - Log a cooked-at-home meal
	GET  /nosh-runs         - List meals in a date range
	GET  /savings/week      - Compute a week's savings
	POST /savings/snapshots - Store a week's savings
	GET  /savings/summary   - Aggregate stored weeks

Smart defaults:

	GET    /smart-defaults            - Learned defaults for now (or ?at=)
	GET    /smart-defaults/confidence - Per-category gate inputs
	POST   /smart-defaults/apply      - Pre-select tiers on a basket
	POST   /smart-defaults/selections - Record a finished basket
	DELETE /smart-defaults            - Forget everything learned

# Handler Initialization

The router builds one db.Store and one smartdefaults.Learner and shares them
between handlers. The learner's record mode comes from cfg.RecordMode.

Every API route is wrapped with middleware.WithLogging and
middleware.Instrument.
*/
package router
