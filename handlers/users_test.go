// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/models"
	"github.com/danielhkuo/nosh/testutil"
)

// setupStore opens a fresh in-memory database wrapped in a Store
func setupStore(t *testing.T) (*db.Store, cliparse.Config) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return db.NewStore(conn), testutil.GetTestConfig()
}

func TestRegisterUser(t *testing.T) {
	store, cfg := setupStore(t)
	handler := NewUserHandler(store, cfg)

	req := testutil.MakeRequest("POST", "/users", models.RegisterUserRequest{DisplayName: "  Sam  "}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.RegisterUserResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.UserID == "" {
		t.Fatal("Expected user_id in response")
	}
	if err := auth.ValidateUserToken(resp.UserID, resp.UserToken, cfg.TokenSalt); err != nil {
		t.Errorf("Returned token does not validate: %v", err)
	}

	user, err := store.GetUser(req.Context(), resp.UserID)
	if err != nil {
		t.Fatalf("User not stored: %v", err)
	}
	if user.DisplayName != "Sam" {
		t.Errorf("Expected trimmed display name 'Sam', got '%s'", user.DisplayName)
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	store, cfg := setupStore(t)
	handler := NewUserHandler(store, cfg)

	longName := make([]byte, maxDisplayNameLen+1)
	for i := range longName {
		longName[i] = 'x'
	}

	testCases := []struct {
		name string
		body interface{}
	}{
		{"invalid JSON", "not an object"},
		{"name too long", models.RegisterUserRequest{DisplayName: string(longName)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/users", tc.body, nil)
			w := httptest.NewRecorder()
			handler.Register(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetMe(t *testing.T) {
	store, cfg := setupStore(t)
	handler := NewUserHandler(store, cfg)
	userID, token := testutil.CreateTestUser(t, store, cfg, "Robin")

	t.Run("authenticated", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/me", nil, testutil.AuthHeaders(userID, token))
		w := httptest.NewRecorder()
		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var user models.User
		testutil.AssertJSON(t, w, &user)
		if user.ID != userID || user.DisplayName != "Robin" {
			t.Errorf("Unexpected user: %+v", user)
		}
	})

	t.Run("missing headers", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/me", nil, nil)
		w := httptest.NewRecorder()
		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/me", nil, testutil.AuthHeaders(userID, "forged"))
		w := httptest.NewRecorder()
		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("valid token for unknown user", func(t *testing.T) {
		ghost := auth.GenerateID()
		req := testutil.MakeRequest("GET", "/users/me", nil,
			testutil.AuthHeaders(ghost, auth.GenerateUserToken(ghost, cfg.TokenSalt)))
		w := httptest.NewRecorder()
		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
