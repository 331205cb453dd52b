// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Nosh API.

# Handler Types

Each handler is a struct with its dependencies and the config:

  - UserHandler: Registration and the current user
  - QuizHandler: Personality quiz scoring and the latest result
  - NoshRunHandler: Logging and listing cooked-at-home meals
  - SavingsHandler: Weekly savings, snapshots and history
  - SmartDefaultsHandler: Learned tier defaults for baskets

Handlers are created via constructor functions:

	store := db.NewStore(conn)
	quizHandler := handlers.NewQuizHandler(store, cfg, metrics)
	defaultsHandler := handlers.NewSmartDefaultsHandler(learner, cfg)

# Authentication

POST /users returns a user_id and user_token. Every other route requires the
X-User-ID and X-User-Token headers and answers 401 when they are missing or
do not match.

# Quiz

	POST /quiz/score   → Score (stores the result)
	GET  /quiz/result  → GetResult (404 before the first quiz)

# Savings

	POST /nosh-runs          → Create
	GET  /nosh-runs          → List ([from, to), current week by default)
	GET  /savings/week       → GetWeek (computed, not stored)
	POST /savings/snapshots  → SaveSnapshot (one row per week)
	GET  /savings/summary    → GetSummary (latest N weeks, default 12)

# Smart Defaults

	GET    /smart-defaults             → Get
	GET    /smart-defaults/confidence  → GetConfidence
	POST   /smart-defaults/apply       → Apply
	POST   /smart-defaults/selections  → RecordSelections
	DELETE /smart-defaults             → Reset

Smart default routes never fail on a store outage. Reads return fallback
values with "degraded": true, and writes return 200 with recorded or reset
set to false.
*/
package handlers
