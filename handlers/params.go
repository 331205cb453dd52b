// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/middleware"
)

const dateLayout = "2006-01-02"

// requireUser authenticates the request and writes a 401 when it fails
func requireUser(w http.ResponseWriter, r *http.Request, salt string) (string, bool) {
	userID, err := middleware.AuthenticateUser(r, salt)
	if err == nil {
		return userID, true
	}

	if errors.Is(err, auth.ErrMissingCredentials) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID and X-User-Token headers required")
	} else {
		slog.Warn("rejected user token", "user_id", r.Header.Get(middleware.HeaderUserID))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
	}
	return "", false
}

// parseDate accepts YYYY-MM-DD or RFC3339 and returns the time in UTC
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// queryInt reads a positive integer query parameter, or def when absent
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return n, nil
}
