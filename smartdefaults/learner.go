// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package smartdefaults

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/nosh/models"
)

const (
	// MinSelections is the sample size a category needs before it is trusted
	MinSelections = 3
	// ConfidenceThreshold is the share the winning tier needs (inclusive)
	ConfidenceThreshold = 0.6

	FallbackTier = models.TierGood

	rushHourStart = 17
	rushHourEnd   = 20
)

// CounterStore is the per-user persistence the learner needs
type CounterStore interface {
	FetchTierCounters(ctx context.Context, userID string) ([]models.TierPreference, error)
	UpsertTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error
	// AddTierCounters adds prefs' counts to the stored ones atomically
	AddTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error
	DeleteTierCounters(ctx context.Context, userID string) error
	DeleteDefaultsLog(ctx context.Context, userID string) error
	LogAppliedDefaults(ctx context.Context, userID string, defaults map[models.IngredientCategory]models.Tier, at time.Time) error
}

// RecordMode controls how a finished session is written back
type RecordMode string

const (
	// RecordAccumulate adds the session's choices to the stored counters
	RecordAccumulate RecordMode = "accumulate"
	// RecordSession replaces the stored counters with the session's choices
	RecordSession RecordMode = "session"
)

func (m RecordMode) Valid() bool {
	return m == RecordAccumulate || m == RecordSession
}

// Outcome is a learner read. Degraded is set when the store failed and
// Value holds the fallback instead of learned data.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

type Observer interface {
	ObserveBuild(hasData, degraded bool)
	ObserveStoreError(op string)
}

type nopObserver struct{}

func (nopObserver) ObserveBuild(bool, bool)  {}
func (nopObserver) ObserveStoreError(string) {}

type Learner struct {
	store    CounterStore
	mode     RecordMode
	observer Observer
	now      func() time.Time
}

type Option func(*Learner)

func WithRecordMode(mode RecordMode) Option {
	return func(l *Learner) {
		if mode.Valid() {
			l.mode = mode
		}
	}
}

func WithObserver(o Observer) Option {
	return func(l *Learner) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithClock overrides the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Learner) {
		l.now = now
	}
}

func NewLearner(store CounterStore, opts ...Option) *Learner {
	l := &Learner{
		store:    store,
		mode:     RecordAccumulate,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mode returns the configured record mode
func (l *Learner) Mode() RecordMode {
	return l.mode
}

// Build learns each category's default tier from the stored counters.
// On a store failure it returns the all-"good" fallback marked Degraded.
func (l *Learner) Build(ctx context.Context, userID string) Outcome[models.SmartDefaults] {
	prefs, err := l.store.FetchTierCounters(ctx, userID)
	if err != nil {
		slog.Warn("failed to fetch tier counters, using fallback defaults", "user_id", userID, "error", err)
		l.observer.ObserveStoreError("fetch")
		l.observer.ObserveBuild(false, true)
		return Outcome[models.SmartDefaults]{Value: FallbackDefaults(), Degraded: true, Err: err}
	}

	defaults := Learn(prefs)
	l.observer.ObserveBuild(defaults.HasData, false)
	return Outcome[models.SmartDefaults]{Value: defaults}
}

// DetailedConfidence reports the gate inputs for every stored category
func (l *Learner) DetailedConfidence(ctx context.Context, userID string) Outcome[[]models.CategoryConfidence] {
	prefs, err := l.store.FetchTierCounters(ctx, userID)
	if err != nil {
		slog.Warn("failed to fetch tier counters for confidence", "user_id", userID, "error", err)
		l.observer.ObserveStoreError("fetch")
		return Outcome[[]models.CategoryConfidence]{Value: []models.CategoryConfidence{}, Degraded: true, Err: err}
	}
	return Outcome[[]models.CategoryConfidence]{Value: Confidence(prefs)}
}

// RecordSelections writes the tiers chosen in a finished basket back to the
// counters. Errors are logged and returned; callers may ignore them.
func (l *Learner) RecordSelections(ctx context.Context, userID string, items []models.TieredIngredient) error {
	session := CountSelections(items)
	if len(session) == 0 {
		return nil
	}

	now := l.now().UTC()
	prefs := make([]models.TierPreference, 0, len(session))
	for _, category := range models.IngredientCategories {
		counts, ok := session[category]
		if !ok {
			continue
		}
		top, _ := counts.Top()
		prefs = append(prefs, models.TierPreference{
			Category:    category,
			Counts:      counts,
			DefaultTier: top,
			UpdatedAt:   now,
		})
	}

	write := l.store.AddTierCounters
	if l.mode == RecordSession {
		write = l.store.UpsertTierCounters
	}
	if err := write(ctx, userID, prefs); err != nil {
		slog.Error("failed to record tier selections", "user_id", userID, "mode", string(l.mode), "error", err)
		l.observer.ObserveStoreError("upsert")
		return fmt.Errorf("failed to write tier counters: %w", err)
	}

	slog.Info("tier selections recorded", "user_id", userID, "categories", len(prefs), "mode", string(l.mode))
	return nil
}

// Reset forgets everything learned for the user
func (l *Learner) Reset(ctx context.Context, userID string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := l.store.DeleteTierCounters(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete tier counters: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := l.store.DeleteDefaultsLog(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete defaults log: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to reset smart defaults", "user_id", userID, "error", err)
		l.observer.ObserveStoreError("delete")
		return err
	}

	slog.Info("smart defaults reset", "user_id", userID)
	return nil
}

// LogApplied records which learned tiers were applied to a basket
func (l *Learner) LogApplied(ctx context.Context, userID string, defaults models.SmartDefaults) error {
	if !defaults.HasData {
		return nil
	}
	if err := l.store.LogAppliedDefaults(ctx, userID, defaults.CategoryDefaults, l.now().UTC()); err != nil {
		slog.Warn("failed to log applied defaults", "user_id", userID, "error", err)
		l.observer.ObserveStoreError("log")
		return fmt.Errorf("failed to log applied defaults: %w", err)
	}
	return nil
}
