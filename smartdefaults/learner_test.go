// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package smartdefaults

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/nosh/models"
)

var errStoreDown = errors.New("store unavailable")

// memoryStore is an in-memory CounterStore keyed by user
type memoryStore struct {
	mu        sync.Mutex
	counters  map[string]map[models.IngredientCategory]models.TierPreference
	logs      map[string]int
	fetchErr  error
	upsertErr error
	deleteErr error
	writes    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		counters: make(map[string]map[models.IngredientCategory]models.TierPreference),
		logs:     make(map[string]int),
	}
}

func (s *memoryStore) FetchTierCounters(ctx context.Context, userID string) ([]models.TierPreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []models.TierPreference
	for _, c := range models.IngredientCategories {
		if p, ok := s.counters[userID][c]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryStore) UpsertTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.counters[userID] == nil {
		s.counters[userID] = make(map[models.IngredientCategory]models.TierPreference)
	}
	for _, p := range prefs {
		s.counters[userID][p.Category] = p
	}
	s.writes++
	return nil
}

func (s *memoryStore) AddTierCounters(ctx context.Context, userID string, prefs []models.TierPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.counters[userID] == nil {
		s.counters[userID] = make(map[models.IngredientCategory]models.TierPreference)
	}
	for _, p := range prefs {
		stored := s.counters[userID][p.Category]
		for _, t := range models.Tiers {
			stored.Counts.Add(t, p.Counts.Get(t))
		}
		stored.Category = p.Category
		stored.DefaultTier, _ = stored.Counts.Top()
		stored.UpdatedAt = p.UpdatedAt
		s.counters[userID][p.Category] = stored
	}
	s.writes++
	return nil
}

func (s *memoryStore) DeleteTierCounters(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.counters, userID)
	return nil
}

func (s *memoryStore) DeleteDefaultsLog(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, userID)
	return nil
}

func (s *memoryStore) LogAppliedDefaults(ctx context.Context, userID string, defaults map[models.IngredientCategory]models.Tier, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[userID] += len(defaults)
	return nil
}

func (s *memoryStore) seed(userID string, prefs ...models.TierPreference) {
	s.counters[userID] = make(map[models.IngredientCategory]models.TierPreference)
	for _, p := range prefs {
		s.counters[userID][p.Category] = p
	}
}

type countingObserver struct {
	builds      int
	degraded    int
	storeErrors map[string]int
}

func (o *countingObserver) ObserveBuild(hasData, degraded bool) {
	o.builds++
	if degraded {
		o.degraded++
	}
}

func (o *countingObserver) ObserveStoreError(op string) {
	if o.storeErrors == nil {
		o.storeErrors = make(map[string]int)
	}
	o.storeErrors[op]++
}

func selections(category models.IngredientCategory, tiers ...models.Tier) []models.TieredIngredient {
	items := make([]models.TieredIngredient, len(tiers))
	for i, tier := range tiers {
		items[i] = models.TieredIngredient{Category: category, SelectedTier: tier}
	}
	return items
}

func TestBuild(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice",
		pref(models.CategoryProtein, 1, 1, 3),
		pref(models.CategoryProduce, 2, 2, 1),
	)
	learner := NewLearner(store)

	outcome := learner.Build(context.Background(), "alice")

	if outcome.Degraded || outcome.Err != nil {
		t.Fatalf("Expected healthy outcome, got degraded=%v err=%v", outcome.Degraded, outcome.Err)
	}
	if !outcome.Value.HasData {
		t.Error("Expected HasData=true")
	}
	if got := outcome.Value.CategoryDefaults[models.CategoryProtein]; got != models.TierBest {
		t.Errorf("Expected protein=best, got %s", got)
	}
	if got := outcome.Value.CategoryDefaults[models.CategoryProduce]; got != models.TierGood {
		t.Errorf("Expected produce=good, got %s", got)
	}
}

func TestBuild_NoHistory(t *testing.T) {
	learner := NewLearner(newMemoryStore())

	outcome := learner.Build(context.Background(), "nobody")

	if outcome.Degraded {
		t.Error("An empty history is not a degraded read")
	}
	if outcome.Value.HasData {
		t.Error("Expected HasData=false")
	}
	if len(outcome.Value.CategoryDefaults) != len(models.IngredientCategories) {
		t.Errorf("Expected all categories populated, got %d", len(outcome.Value.CategoryDefaults))
	}
}

func TestBuild_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.fetchErr = errStoreDown
	observer := &countingObserver{}
	learner := NewLearner(store, WithObserver(observer))

	outcome := learner.Build(context.Background(), "alice")

	if !outcome.Degraded {
		t.Error("Expected degraded outcome")
	}
	if !errors.Is(outcome.Err, errStoreDown) {
		t.Errorf("Expected store error, got %v", outcome.Err)
	}
	if outcome.Value.HasData {
		t.Error("Expected HasData=false on fallback")
	}
	for _, c := range models.IngredientCategories {
		if outcome.Value.CategoryDefaults[c] != models.TierGood {
			t.Errorf("Expected fallback good for %s, got %s", c, outcome.Value.CategoryDefaults[c])
		}
	}
	if observer.degraded != 1 || observer.storeErrors["fetch"] != 1 {
		t.Errorf("Expected one degraded build and one fetch error, got %+v", observer)
	}
}

func TestDetailedConfidence(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice", pref(models.CategoryDairy, 0, 4, 1))
	learner := NewLearner(store)

	outcome := learner.DetailedConfidence(context.Background(), "alice")

	if outcome.Degraded {
		t.Fatal("Expected healthy outcome")
	}
	if len(outcome.Value) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(outcome.Value))
	}
	row := outcome.Value[0]
	if row.Tier != models.TierBetter || row.TotalSelections != 5 || !row.IsUsual {
		t.Errorf("Unexpected confidence row %+v", row)
	}
}

func TestDetailedConfidence_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.fetchErr = errStoreDown
	learner := NewLearner(store)

	outcome := learner.DetailedConfidence(context.Background(), "alice")

	if !outcome.Degraded {
		t.Error("Expected degraded outcome")
	}
	if outcome.Value == nil || len(outcome.Value) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", outcome.Value)
	}
}

func TestRecordSelections_Accumulates(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice", pref(models.CategoryProtein, 0, 0, 2), pref(models.CategoryDairy, 3, 0, 0))
	fixed := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	learner := NewLearner(store, WithClock(func() time.Time { return fixed }))

	err := learner.RecordSelections(context.Background(), "alice",
		selections(models.CategoryProtein, models.TierBest, models.TierGood))
	if err != nil {
		t.Fatalf("RecordSelections failed: %v", err)
	}

	protein := store.counters["alice"][models.CategoryProtein]
	expected := models.TierCounts{Good: 1, Better: 0, Best: 3}
	if protein.Counts != expected {
		t.Errorf("Expected accumulated counts %+v, got %+v", expected, protein.Counts)
	}
	if protein.DefaultTier != models.TierBest {
		t.Errorf("Expected default tier best, got %s", protein.DefaultTier)
	}
	if !protein.UpdatedAt.Equal(fixed) {
		t.Errorf("Expected updated at %s, got %s", fixed, protein.UpdatedAt)
	}

	// Categories absent from the session are untouched
	if store.counters["alice"][models.CategoryDairy].Counts.Good != 3 {
		t.Error("Dairy counters should be untouched")
	}

	// History now passes the gate: 3 of 4
	outcome := learner.Build(context.Background(), "alice")
	if outcome.Value.CategoryDefaults[models.CategoryProtein] != models.TierBest {
		t.Errorf("Expected protein=best after accumulation, got %s", outcome.Value.CategoryDefaults[models.CategoryProtein])
	}
}

func TestRecordSelections_SessionMode(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice", pref(models.CategoryProtein, 0, 0, 9))
	learner := NewLearner(store, WithRecordMode(RecordSession))

	err := learner.RecordSelections(context.Background(), "alice",
		selections(models.CategoryProtein, models.TierGood, models.TierBetter))
	if err != nil {
		t.Fatalf("RecordSelections failed: %v", err)
	}

	protein := store.counters["alice"][models.CategoryProtein]
	expected := models.TierCounts{Good: 1, Better: 1, Best: 0}
	if protein.Counts != expected {
		t.Errorf("Expected session counts %+v, got %+v", expected, protein.Counts)
	}
	// good and better tie, lower tier wins
	if protein.DefaultTier != models.TierGood {
		t.Errorf("Expected default tier good, got %s", protein.DefaultTier)
	}
}

func TestRecordSelections_Empty(t *testing.T) {
	store := newMemoryStore()
	learner := NewLearner(store)

	if err := learner.RecordSelections(context.Background(), "alice", nil); err != nil {
		t.Fatalf("RecordSelections failed: %v", err)
	}
	if store.writes != 0 {
		t.Errorf("Expected no writes for an empty basket, got %d", store.writes)
	}
}

func TestRecordSelections_StoreFailure(t *testing.T) {
	for _, mode := range []RecordMode{RecordAccumulate, RecordSession} {
		t.Run(string(mode), func(t *testing.T) {
			store := newMemoryStore()
			store.upsertErr = errStoreDown
			observer := &countingObserver{}
			learner := NewLearner(store, WithRecordMode(mode), WithObserver(observer))

			err := learner.RecordSelections(context.Background(), "alice",
				selections(models.CategoryHerbs, models.TierBetter))
			if !errors.Is(err, errStoreDown) {
				t.Errorf("Expected store error, got %v", err)
			}
			if observer.storeErrors["upsert"] != 1 {
				t.Errorf("Expected one upsert error, got %+v", observer.storeErrors)
			}
		})
	}
}

// Accumulating never reads the counters first, so a fetch outage does not
// block recording
func TestRecordSelections_AccumulateSkipsFetch(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice", pref(models.CategoryHerbs, 0, 5, 0))
	store.fetchErr = errStoreDown
	learner := NewLearner(store)

	err := learner.RecordSelections(context.Background(), "alice",
		selections(models.CategoryHerbs, models.TierGood))
	if err != nil {
		t.Fatalf("RecordSelections failed: %v", err)
	}

	expected := models.TierCounts{Good: 1, Better: 5, Best: 0}
	if got := store.counters["alice"][models.CategoryHerbs].Counts; got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestRecordSelections_ConcurrentSessionsAccumulate(t *testing.T) {
	store := newMemoryStore()
	learner := NewLearner(store)

	sessions := 20
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := learner.RecordSelections(context.Background(), "alice",
				selections(models.CategoryPantry, models.TierBest)); err != nil {
				t.Errorf("RecordSelections failed: %v", err)
			}
		}()
	}
	wg.Wait()

	pantry := store.counters["alice"][models.CategoryPantry]
	if pantry.Counts.Best != sessions {
		t.Errorf("Expected %d best selections, got %d", sessions, pantry.Counts.Best)
	}
	if pantry.DefaultTier != models.TierBest {
		t.Errorf("Expected default tier best, got %s", pantry.DefaultTier)
	}
}

func TestReset(t *testing.T) {
	store := newMemoryStore()
	store.seed("alice", pref(models.CategoryProtein, 0, 0, 5))
	store.seed("bob", pref(models.CategoryProtein, 0, 5, 0))
	store.logs["alice"] = 3
	learner := NewLearner(store)

	if err := learner.Reset(context.Background(), "alice"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if _, ok := store.counters["alice"]; ok {
		t.Error("Expected alice's counters deleted")
	}
	if _, ok := store.logs["alice"]; ok {
		t.Error("Expected alice's log deleted")
	}
	if _, ok := store.counters["bob"]; !ok {
		t.Error("Bob's counters should be untouched")
	}

	outcome := learner.Build(context.Background(), "alice")
	if outcome.Value.HasData {
		t.Error("Expected no learned data after reset")
	}
}

func TestReset_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.deleteErr = errStoreDown
	learner := NewLearner(store)

	if err := learner.Reset(context.Background(), "alice"); !errors.Is(err, errStoreDown) {
		t.Errorf("Expected store error, got %v", err)
	}
}

func TestLogApplied(t *testing.T) {
	store := newMemoryStore()
	learner := NewLearner(store)

	if err := learner.LogApplied(context.Background(), "alice", FallbackDefaults()); err != nil {
		t.Fatalf("LogApplied failed: %v", err)
	}
	if store.logs["alice"] != 0 {
		t.Error("Fallback defaults should not be logged")
	}

	defaults := learned(map[models.IngredientCategory]models.Tier{models.CategoryProtein: models.TierBest})
	if err := learner.LogApplied(context.Background(), "alice", defaults); err != nil {
		t.Fatalf("LogApplied failed: %v", err)
	}
	if store.logs["alice"] != len(models.IngredientCategories) {
		t.Errorf("Expected %d log entries, got %d", len(models.IngredientCategories), store.logs["alice"])
	}
}

func TestWithRecordMode_IgnoresUnknown(t *testing.T) {
	learner := NewLearner(newMemoryStore(), WithRecordMode("bogus"))
	if learner.Mode() != RecordAccumulate {
		t.Errorf("Expected accumulate mode, got %s", learner.Mode())
	}
}
