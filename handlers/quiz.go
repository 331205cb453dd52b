// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/middleware"
	"github.com/danielhkuo/nosh/models"
	"github.com/danielhkuo/nosh/quiz"
)

// QuizObserver is notified of every scored quiz
type QuizObserver interface {
	ObserveQuiz(result models.PersonalityScoreResult)
}

type QuizHandler struct {
	store    *db.Store
	cfg      cliparse.Config
	observer QuizObserver
	now      func() time.Time
}

func NewQuizHandler(store *db.Store, cfg cliparse.Config, observer QuizObserver) *QuizHandler {
	return &QuizHandler{store: store, cfg: cfg, observer: observer, now: time.Now}
}

// Score handles POST /quiz/score
// Scores the answers and stores the result for the user
func (h *QuizHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	var req models.ScoreQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result := quiz.Score(req.Answers)
	if h.observer != nil {
		h.observer.ObserveQuiz(result)
	}

	record := models.QuizResult{
		ID:        auth.GenerateID(),
		UserID:    userID,
		Result:    result,
		CreatedAt: h.now(),
	}
	if err := h.store.SaveQuizResult(r.Context(), record); err != nil {
		slog.Error("failed to save quiz result", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save quiz result")
		return
	}

	slog.Info("quiz scored",
		"user_id", userID,
		"primary", result.Primary,
		"confidence", result.Confidence,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.ScoreQuizResponse{
		ResultID: record.ID,
		Result:   result,
		Profile:  quiz.Profile(result.Primary),
	})
}

// GetResult handles GET /quiz/result
// Returns the user's most recent quiz result
func (h *QuizHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	record, err := h.store.LatestQuizResult(r.Context(), userID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No quiz result yet")
		return
	}
	if err != nil {
		slog.Error("failed to query quiz result", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScoreQuizResponse{
		ResultID: record.ID,
		Result:   record.Result,
		Profile:  quiz.Profile(record.Result.Primary),
	})
}
