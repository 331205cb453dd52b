// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and runs all queries.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres" (lib/pq):

	conn, err := db.Open(db.TypeSQLite, "nosh.db")

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on both engines.

# Tables

  - app_user: Registered users
  - quiz_result: Scored quizzes, full result kept as JSON
  - nosh_run: Cooked-at-home meals and their cost
  - savings_snapshot: One row per user and week
  - tier_preference: good/better/best counters per user and category
  - smart_defaults_log: Learned tiers applied to baskets

# Relationships

	app_user 1──* quiz_result
	app_user 1──* nosh_run
	app_user 1──* savings_snapshot
	app_user 1──* tier_preference
	app_user 1──* smart_defaults_log

All foreign keys use ON DELETE CASCADE.

# Queries

Store wraps the connection. It implements smartdefaults.CounterStore:

	store := db.NewStore(conn)
	learner := smartdefaults.NewLearner(store)

Lookups of a single row return ErrNotFound when nothing matches. Times are
written in UTC.
*/
package db
