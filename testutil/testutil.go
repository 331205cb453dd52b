// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/nosh/auth"
	"github.com/danielhkuo/nosh/cliparse"
	"github.com/danielhkuo/nosh/db"
	"github.com/danielhkuo/nosh/models"
)

// TestDBURL opens a private in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		TokenSalt:    "test-token-salt",
		LogLevel:     "info",
		LogFormat:    "text",
		RecordMode:   "accumulate",
	}
}

// CreateTestUser inserts a user and returns its ID and token
func CreateTestUser(t *testing.T, store *db.Store, cfg cliparse.Config, name string) (userID, token string) {
	t.Helper()

	userID = auth.GenerateID()
	err := store.CreateUser(context.Background(), models.User{
		ID:          userID,
		DisplayName: name,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID, auth.GenerateUserToken(userID, cfg.TokenSalt)
}

// AuthHeaders returns the credential headers for a user
func AuthHeaders(userID, token string) map[string]string {
	return map[string]string{
		"X-User-ID":    userID,
		"X-User-Token": token,
	}
}

// CreateTestRun inserts a nosh run and returns its ID
func CreateTestRun(t *testing.T, store *db.Store, userID string, runDate time.Time, spent string) string {
	t.Helper()

	id := auth.GenerateID()
	err := store.CreateNoshRun(context.Background(), models.NoshRunRecord{
		ID:         id,
		UserID:     userID,
		RunDate:    runDate,
		TotalSpent: decimal.RequireFromString(spent),
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test run: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
