// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/shopspring/decimal"

// Learning status shown next to smart defaults
const (
	StatusLearning = "learning"
	StatusActive   = "active"
)

// Request types

type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
}

// question key (q1, q2, ...) -> personality type
type ScoreQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

type CreateNoshRunRequest struct {
	RunDate    string          `json:"run_date"` // YYYY-MM-DD or RFC3339
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type SaveSnapshotRequest struct {
	WeekStart     string `json:"week_start"` // YYYY-MM-DD
	HouseholdSize int    `json:"household_size"`
}

type ApplyDefaultsRequest struct {
	Items []TieredIngredient `json:"items"`
	At    string             `json:"at,omitempty"` // RFC3339, defaults to now
}

type RecordSelectionsRequest struct {
	Items []TieredIngredient `json:"items"`
}

// Response types

type RegisterUserResponse struct {
	UserID    string `json:"user_id"`
	UserToken string `json:"user_token"`
}

type ScoreQuizResponse struct {
	ResultID string                 `json:"result_id,omitempty"`
	Result   PersonalityScoreResult `json:"result"`
	Profile  PersonalityProfile     `json:"profile"`
}

type CreateNoshRunResponse struct {
	ID string `json:"id"`
}

type WeekSavingsResponse struct {
	WeekStart     string            `json:"week_start"`
	HouseholdSize int               `json:"household_size"`
	Result        WeekSavingsResult `json:"result"`
	SavingsLabel  string            `json:"savings_label"`
}

type SavingsSummaryResponse struct {
	Summary         AggregatedSavingsResult `json:"summary"`
	Snapshots       []SavingsSnapshot       `json:"snapshots"`
	TotalSavedLabel string                  `json:"total_saved_label"`
}

type SmartDefaultsResponse struct {
	Defaults SmartDefaults `json:"defaults"`
	Status   string        `json:"status"`
	Degraded bool          `json:"degraded"`
}

type ConfidenceResponse struct {
	Categories []CategoryConfidence `json:"categories"`
	Degraded   bool                 `json:"degraded"`
}

type ApplyDefaultsResponse struct {
	Items    []TieredIngredient `json:"items"`
	Defaults SmartDefaults      `json:"defaults"`
	Degraded bool               `json:"degraded"`
}

type RecordSelectionsResponse struct {
	Recorded bool `json:"recorded"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ResetDefaultsResponse struct {
	Reset bool `json:"reset"`
}

type NoshRunListResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Runs []NoshRunRecord `json:"runs"`
}
