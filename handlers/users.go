// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/middleware"
	"github.com/danielhkuo/nosh/models"
)

const maxDisplayNameLen = 64

type UserHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewUserHandler(store *db.Store, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: store, cfg: cfg}
}

// Register handles POST /users
// Creates a user and returns its ID and token. The token is never stored.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if len(req.DisplayName) > maxDisplayNameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is too long")
		return
	}

	user := models.User{
		ID:          auth.GenerateID(),
		DisplayName: req.DisplayName,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:    user.ID,
		UserToken: auth.GenerateUserToken(user.ID, h.cfg.TokenSalt),
	})
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.TokenSalt)
	if !ok {
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
