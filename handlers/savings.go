// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
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

const (
	defaultSummaryWeeks = 12
	maxSummaryWeeks     = 104
	maxHouseholdSize    = 20
)

type SavingsHandler struct {
	store *db.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewSavingsHandler(store *db.Store, cfg cliparse.Config) *SavingsHandler {
	return &SavingsHandler{store: store, cfg: cfg, now: time.Now}
}

// GetWeek handles GET /savings/week?week_start=YYYY-MM-DD&household_size=N
// Computes the week's savings from the stored nosh runs without saving them
func (h *SavingsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	weekStart := savings.WeekStartOf(h.now())
	if raw := r.URL.Query().Get("week_start"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "week_start must be YYYY-MM-DD")
			return
		}
		weekStart = parsed
	}

	householdSize, err := queryInt(r, "household_size", 1)
	if err != nil || householdSize > maxHouseholdSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "household_size must be between 1 and 20")
		return
	}

	result, err := h.calculate(r.Context(), userID, weekStart, householdSize)
	if err != nil {
		slog.Error("failed to calculate week savings", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WeekSavingsResponse{
		WeekStart:     weekStart.Format(dateLayout),
		HouseholdSize: householdSize,
		Result:        result,
		SavingsLabel:  savings.FormatMoney(result.Savings),
	})
}

// SaveSnapshot handles POST /savings/snapshots
// Computes a week and stores it, replacing an earlier snapshot of that week
func (h *SavingsHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	var req models.SaveSnapshotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	weekStart, err := time.Parse(dateLayout, req.WeekStart)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_start must be YYYY-MM-DD")
		return
	}
	if req.HouseholdSize == 0 {
		req.HouseholdSize = 1
	}
	if req.HouseholdSize < 1 || req.HouseholdSize > maxHouseholdSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "household_size must be between 1 and 20")
		return
	}

	result, err := h.calculate(r.Context(), userID, weekStart, req.HouseholdSize)
	if err != nil {
		slog.Error("failed to calculate week savings", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	snapshot := models.SavingsSnapshot{
		ID:            auth.GenerateID(),
		UserID:        userID,
		WeekStart:     weekStart,
		PlannedAmount: result.Planned,
		ActualAmount:  result.Actual,
		SavingsAmount: result.Savings,
		MealsCooked:   result.MealsCookedAtHome,
		CreatedAt:     h.now(),
	}
	if err := h.store.UpsertSnapshot(r.Context(), snapshot); err != nil {
		slog.Error("failed to save savings snapshot", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save snapshot")
		return
	}

	slog.Info("savings snapshot saved",
		"user_id", userID,
		"week_start", req.WeekStart,
		"savings", result.Savings.String(),
	)

	middleware.JSONResponse(w, http.StatusCreated, snapshot)
}

// GetSummary handles GET /savings/summary?limit=N
// Aggregates the N most recent snapshots (default 12)
func (h *SavingsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", defaultSummaryWeeks)
	if err != nil || limit > maxSummaryWeeks {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 104")
		return
	}

	snapshots, err := h.store.ListSnapshots(r.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to list savings snapshots", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summary := savings.Aggregate(snapshots)
	middleware.JSONResponse(w, http.StatusOK, models.SavingsSummaryResponse{
		Summary:         summary,
		Snapshots:       snapshots,
		TotalSavedLabel: savings.FormatMoney(summary.TotalSaved),
	})
}

func (h *SavingsHandler) calculate(ctx context.Context, userID string, weekStart time.Time, householdSize int) (models.WeekSavingsResult, error) {
	runs, err := h.store.ListNoshRuns(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return models.WeekSavingsResult{}, err
	}
	return savings.CalculateWeek(runs, weekStart, householdSize), nil
}
