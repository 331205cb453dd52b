// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/middleware"
	"github.com/danielhkuo/nosh/models"
	"github.com/danielhkuo/nosh/smartdefaults"
)

// SmartDefaultsHandler serves learned tier defaults. Learner failures never
// fail a request: reads come back degraded and writes report false.
type SmartDefaultsHandler struct {
	learner *smartdefaults.Learner
	cfg     cliparse.Config
	now     func() time.Time
}

func NewSmartDefaultsHandler(learner *smartdefaults.Learner, cfg cliparse.Config) *SmartDefaultsHandler {
	return &SmartDefaultsHandler{learner: learner, cfg: cfg, now: time.Now}
}

// Get handles GET /smart-defaults?at=RFC3339
// Returns the learned defaults adjusted for the time of day
func (h *SmartDefaultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	at, ok := h.requestTime(w, r.URL.Query().Get("at"))
	if !ok {
		return
	}

	outcome := h.learner.Build(r.Context(), userID)
	defaults := smartdefaults.ApplyTimeAwareness(outcome.Value, models.TimeContextAt(at))

	middleware.JSONResponse(w, http.StatusOK, models.SmartDefaultsResponse{
		Defaults: defaults,
		Status:   status(defaults),
		Degraded: outcome.Degraded,
	})
}

// GetConfidence handles GET /smart-defaults/confidence
func (h *SmartDefaultsHandler) GetConfidence(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	outcome := h.learner.DetailedConfidence(r.Context(), userID)
	middleware.JSONResponse(w, http.StatusOK, models.ConfidenceResponse{
		Categories: outcome.Value,
		Degraded:   outcome.Degraded,
	})
}

// Apply handles POST /smart-defaults/apply
// Pre-selects learned tiers on a basket. Locked items are left alone.
func (h *SmartDefaultsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	var req models.ApplyDefaultsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	at, ok := h.requestTime(w, req.At)
	if !ok {
		return
	}

	outcome := h.learner.Build(r.Context(), userID)
	defaults := smartdefaults.ApplyTimeAwareness(outcome.Value, models.TimeContextAt(at))
	items := smartdefaults.Apply(req.Items, defaults)
	if items == nil {
		items = []models.TieredIngredient{}
	}

	// Logged inside the learner on failure
	_ = h.learner.LogApplied(r.Context(), userID, defaults)

	middleware.JSONResponse(w, http.StatusOK, models.ApplyDefaultsResponse{
		Items:    items,
		Defaults: defaults,
		Degraded: outcome.Degraded,
	})
}

// RecordSelections handles POST /smart-defaults/selections
// Feeds the tiers of a finished basket back into the counters
func (h *SmartDefaultsHandler) RecordSelections(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	var req models.RecordSelectionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.learner.RecordSelections(r.Context(), userID, req.Items)
	middleware.JSONResponse(w, http.StatusOK, models.RecordSelectionsResponse{Recorded: err == nil})
}

// Reset handles DELETE /smart-defaults
func (h *SmartDefaultsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	err := h.learner.Reset(r.Context(), userID)
	middleware.JSONResponse(w, http.StatusOK, models.ResetDefaultsResponse{Reset: err == nil})
}

func (h *SmartDefaultsHandler) requestTime(w http.ResponseWriter, raw string) (time.Time, bool) {
	if raw == "" {
		return h.now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at must be RFC3339")
		return time.Time{}, false
	}
	return at, true
}

func status(defaults models.SmartDefaults) string {
	if defaults.HasData {
		return models.StatusActive
	}
	return models.StatusLearning
}
