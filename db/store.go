// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/nosh/models"
)

var ErrNotFound = errors.New("not found")

// Store runs all queries for the service. Every query is scoped by user.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Users

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, display_name, created_at)
		VALUES ($1, $2, $3)
	`, user.ID, user.DisplayName, user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, created_at FROM app_user WHERE id = $1
	`, userID).Scan(&user.ID, &user.DisplayName, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Quiz results

func (s *Store) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	payload, err := json.Marshal(result.Result)
	if err != nil {
		return fmt.Errorf("failed to encode quiz result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quiz_result (id, user_id, primary_type, confidence, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, result.ID, result.UserID, string(result.Result.Primary), result.Result.Confidence,
		string(payload), result.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert quiz result: %w", err)
	}
	return nil
}

// LatestQuizResult returns the user's most recent quiz result
func (s *Store) LatestQuizResult(ctx context.Context, userID string) (models.QuizResult, error) {
	var result models.QuizResult
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, payload, created_at
		FROM quiz_result
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&result.ID, &result.UserID, &payload, &result.CreatedAt)
	if err == sql.ErrNoRows {
		return models.QuizResult{}, ErrNotFound
	}
	if err != nil {
		return models.QuizResult{}, fmt.Errorf("failed to query quiz result: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &result.Result); err != nil {
		return models.QuizResult{}, fmt.Errorf("failed to decode quiz result: %w", err)
	}
	return result, nil
}

// Nosh runs

func (s *Store) CreateNoshRun(ctx context.Context, run models.NoshRunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nosh_run (id, user_id, run_date, total_spent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.UserID, run.RunDate.UTC(), run.TotalSpent, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert nosh run: %w", err)
	}
	return nil
}

// ListNoshRuns returns the user's runs dated in [from, to), oldest first
func (s *Store) ListNoshRuns(ctx context.Context, userID string, from, to time.Time) ([]models.NoshRunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, run_date, total_spent, created_at
		FROM nosh_run
		WHERE user_id = $1 AND run_date >= $2 AND run_date < $3
		ORDER BY run_date
	`, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query nosh runs: %w", err)
	}
	defer rows.Close()

	runs := []models.NoshRunRecord{}
	for rows.Next() {
		var run models.NoshRunRecord
		if err := rows.Scan(&run.ID, &run.UserID, &run.RunDate, &run.TotalSpent, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nosh run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Savings snapshots

// UpsertSnapshot stores a week's savings, replacing any earlier snapshot of
// the same week
func (s *Store) UpsertSnapshot(ctx context.Context, snap models.SavingsSnapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO savings_snapshot
			(id, user_id, week_start, planned_amount, actual_amount, savings_amount, meals_cooked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			planned_amount = excluded.planned_amount,
			actual_amount = excluded.actual_amount,
			savings_amount = excluded.savings_amount,
			meals_cooked = excluded.meals_cooked,
			created_at = excluded.created_at
	`, snap.ID, snap.UserID, snap.WeekStart.UTC(), snap.PlannedAmount, snap.ActualAmount,
		snap.SavingsAmount, snap.MealsCooked, snap.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert savings snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns up to limit snapshots, most recent week first
func (s *Store) ListSnapshots(ctx context.Context, userID string, limit int) ([]models.SavingsSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, week_start, planned_amount, actual_amount, savings_amount, meals_cooked, created_at
		FROM savings_snapshot
		WHERE user_id = $1
		ORDER BY week_start DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.SavingsSnapshot{}
	for rows.Next() {
		var snap models.SavingsSnapshot
		if err := rows.Scan(&snap.ID, &snap.UserID, &snap.WeekStart, &snap.PlannedAmount,
			&snap.ActualAmount, &snap.SavingsAmount, &snap.MealsCooked, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Tier preference counters

func (s *Store) FetchTierCounters(ctx context.Context, userID string) ([]models.TierPreference, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, good_count, better_count, best_count, default_tier, updated_at
		FROM tier_preference
		WHERE user_id = $1
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier counters: %w", err)
	}
	defer rows.Close()

	prefs := []models.TierPreference{}
	for rows.Next() {
		var p models.TierPreference
		if err := rows.Scan(&p.Category, &p.Counts.Good, &p.Counts.Better, &p.Counts.Best,
			&p.DefaultTier, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tier counters: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// UpsertTierCounters writes one row per category in a single transaction,
// replacing the stored counts
func (s *Store) UpsertTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range prefs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tier_preference
				(user_id, category, good_count, better_count, best_count, default_tier, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, category) DO UPDATE SET
				good_count = excluded.good_count,
				better_count = excluded.better_count,
				best_count = excluded.best_count,
				default_tier = excluded.default_tier,
				updated_at = excluded.updated_at
		`, userID, string(p.Category), p.Counts.Good, p.Counts.Better, p.Counts.Best,
			string(p.DefaultTier), p.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to upsert tier counters for %s: %w", p.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier counters: %w", err)
	}
	return nil
}

// AddTierCounters adds the given counts to the stored counters in a single
// transaction and recomputes each row's default tier from the new totals.
// The addition happens in SQL, so concurrent sessions never lose counts.
func (s *Store) AddTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range prefs {
		var total models.TierCounts
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tier_preference
				(user_id, category, good_count, better_count, best_count, default_tier, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, category) DO UPDATE SET
				good_count = tier_preference.good_count + excluded.good_count,
				better_count = tier_preference.better_count + excluded.better_count,
				best_count = tier_preference.best_count + excluded.best_count,
				updated_at = excluded.updated_at
			RETURNING good_count, better_count, best_count
		`, userID, string(p.Category), p.Counts.Good, p.Counts.Better, p.Counts.Best,
			string(p.DefaultTier), p.UpdatedAt.UTC()).Scan(&total.Good, &total.Better, &total.Best)
		if err != nil {
			return fmt.Errorf("failed to add tier counters for %s: %w", p.Category, err)
		}

		top, _ := total.Top()
		_, err = tx.ExecContext(ctx, `
			UPDATE tier_preference SET default_tier = $3
			WHERE user_id = $1 AND category = $2
		`, userID, string(p.Category), string(top))
		if err != nil {
			return fmt.Errorf("failed to update default tier for %s: %w", p.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier counters: %w", err)
	}
	return nil
}

func (s *Store) DeleteTierCounters(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tier_preference WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete tier counters: %w", err)
	}
	return nil
}

func (s *Store) DeleteDefaultsLog(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM smart_defaults_log WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete defaults log: %w", err)
	}
	return nil
}

func (s *Store) LogAppliedDefaults(ctx context.Context, userID string, defaults map[models.IngredientCategory]models.Tier, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, category := range models.IngredientCategories {
		tier, ok := defaults[category]
		if !ok {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO smart_defaults_log (id, user_id, category, tier, applied_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), userID, string(category), string(tier), at.UTC())
		if err != nil {
			return fmt.Errorf("failed to log default for %s: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit defaults log: %w", err)
	}
	return nil
}

// CountDefaultsLog returns how many applied defaults are logged for the user
func (s *Store) CountDefaultsLog(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM smart_defaults_log WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count defaults log: %w", err)
	}
	return count, nil
}
