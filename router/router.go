// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/handlers"
	"github.com/danielhkuo/nosh/metrics"
	"github.com/danielhkuo/nosh/middleware"
	"github.com/danielhkuo/nosh/smartdefaults"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	store := db.NewStore(conn)
	learner := smartdefaults.NewLearner(store,
		smartdefaults.WithRecordMode(smartdefaults.RecordMode(cfg.RecordMode)),
		smartdefaults.WithObserver(m),
	)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(store, cfg)
	quizHandler := handlers.NewQuizHandler(store, cfg, m)
	runHandler := handlers.NewNoshRunHandler(store, cfg)
	savingsHandler := handlers.NewSavingsHandler(store, cfg)
	defaultsHandler := handlers.NewSmartDefaultsHandler(learner, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.Instrument(m, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Users
	handle("POST /users", userHandler.Register)
	handle("GET /users/me", userHandler.GetMe)

	// Personality quiz
	handle("POST /quiz/score", quizHandler.Score)
	handle("GET /quiz/result", quizHandler.GetResult)

	// Nosh runs and savings
	handle("POST /nosh-runs", runHandler.Create)
	handle("GET /nosh-runs", runHandler.List)
	handle("GET /savings/week", savingsHandler.GetWeek)
	handle("POST /savings/snapshots", savingsHandler.SaveSnapshot)
	handle("GET /savings/summary", savingsHandler.GetSummary)

	// Smart defaults
	handle("GET /smart-defaults", defaultsHandler.Get)
	handle("GET /smart-defaults/confidence", defaultsHandler.GetConfidence)
	handle("POST /smart-defaults/apply", defaultsHandler.Apply)
	handle("POST /smart-defaults/selections", defaultsHandler.RecordSelections)
	handle("DELETE /smart-defaults", defaultsHandler.Reset)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nosh API v1"))
	})

	return mux
}
