// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/middleware"
	"github.com/danielhkuo/nosh/models"
	"github.com/danielhkuo/nosh/savings"
)

type NoshRunHandler struct {
	store *db.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewNoshRunHandler(store *db.Store, cfg cliparse.Config) *NoshRunHandler {
	return &NoshRunHandler{store: store, cfg: cfg, now: time.Now}
}

// Create handles POST /nosh-runs
// Records one cooked-at-home meal and what it cost
func (h *NoshRunHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	var req models.CreateNoshRunRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.TotalSpent.IsNegative() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "total_spent must not be negative")
		return
	}

	runDate := h.now().UTC()
	if req.RunDate != "" {
		parsed, err := parseDate(req.RunDate)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "run_date must be YYYY-MM-DD or RFC3339")
			return
		}
		runDate = parsed
	}

	run := models.NoshRunRecord{
		ID:         auth.GenerateID(),
		UserID:     userID,
		RunDate:    runDate,
		TotalSpent: req.TotalSpent,
		CreatedAt:  h.now(),
	}
	if err := h.store.CreateNoshRun(r.Context(), run); err != nil {
		slog.Error("failed to create nosh run", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record nosh run")
		return
	}

	slog.Info("nosh run recorded", "user_id", userID, "run_id", run.ID, "total_spent", run.TotalSpent.String())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateNoshRunResponse{ID: run.ID})
}

// List handles GET /nosh-runs?from=YYYY-MM-DD&to=YYYY-MM-DD
// Lists runs in [from, to). Defaults to the current week.
func (h *NoshRunHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	from := savings.WeekStartOf(h.now())
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "from must be YYYY-MM-DD or RFC3339")
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, 7)
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "to must be YYYY-MM-DD or RFC3339")
			return
		}
		to = parsed
	}

	if !to.After(from) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "to must be after from")
		return
	}

	runs, err := h.store.ListNoshRuns(r.Context(), userID, from, to)
	if err != nil {
		slog.Error("failed to list nosh runs", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NoshRunListResponse{
		From: from.Format(time.RFC3339),
		To:   to.Format(time.RFC3339),
		Runs: runs,
	})
}
