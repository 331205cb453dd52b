// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Personality types. Declaration order is the tie-break order used by the
// quiz scorer.
type PersonalityType string

const (
	PersonalityOCDPlanner     PersonalityType = "ocd_planner"
	PersonalityHumpdayNosher  PersonalityType = "humpday_nosher"
	PersonalityWeekendWarrior PersonalityType = "weekend_warrior"
	PersonalityThrillSeeker   PersonalityType = "thrill_seeker"
)

// PersonalityTypes lists every personality in declaration order
var PersonalityTypes = []PersonalityType{
	PersonalityOCDPlanner,
	PersonalityHumpdayNosher,
	PersonalityWeekendWarrior,
	PersonalityThrillSeeker,
}

// Valid reports whether p is one of the known personality types
func (p PersonalityType) Valid() bool {
	switch p {
	case PersonalityOCDPlanner, PersonalityHumpdayNosher, PersonalityWeekendWarrior, PersonalityThrillSeeker:
		return true
	}
	return false
}

// Tier is a price/quality level. Tiers are ordered good < better < best.
type Tier string

const (
	TierGood   Tier = "good"
	TierBetter Tier = "better"
	TierBest   Tier = "best"
)

// Tiers lists every tier in ascending order
var Tiers = []Tier{TierGood, TierBetter, TierBest}

func (t Tier) Valid() bool {
	switch t {
	case TierGood, TierBetter, TierBest:
		return true
	}
	return false
}

// IngredientCategory groups basket items for tier learning
type IngredientCategory string

const (
	CategoryProtein IngredientCategory = "protein"
	CategoryProduce IngredientCategory = "produce"
	CategoryDairy   IngredientCategory = "dairy"
	CategoryPantry  IngredientCategory = "pantry"
	CategorySpice   IngredientCategory = "spice"
	CategorySauce   IngredientCategory = "sauce"
	CategoryHerbs   IngredientCategory = "herbs"
	CategoryOther   IngredientCategory = "other"
)

// IngredientCategories lists every known category
var IngredientCategories = []IngredientCategory{
	CategoryProtein,
	CategoryProduce,
	CategoryDairy,
	CategoryPantry,
	CategorySpice,
	CategorySauce,
	CategoryHerbs,
	CategoryOther,
}

func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryProtein, CategoryProduce, CategoryDairy, CategoryPantry,
		CategorySpice, CategorySauce, CategoryHerbs, CategoryOther:
		return true
	}
	return false
}

// Quiz types

type PersonalityScoreResult struct {
	Primary        PersonalityType         `json:"primary"`
	PrimaryScore   int                     `json:"primary_score"`
	Secondary      *PersonalityType        `json:"secondary"` // nil when the runner-up scored zero
	SecondaryScore int                     `json:"secondary_score"`
	Confidence     float64                 `json:"confidence"`
	AllScores      map[PersonalityType]int `json:"all_scores"`
}

type PersonalityProfile struct {
	Type    PersonalityType `json:"type"`
	Title   string          `json:"title"`
	Tagline string          `json:"tagline"`
}

type QuizResult struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"-"`
	Result    PersonalityScoreResult `json:"result"`
	CreatedAt time.Time              `json:"created_at"`
}

// Savings types

// NoshRunRecord is a single cooking/shopping event with the money spent on it
type NoshRunRecord struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	RunDate    time.Time       `json:"run_date"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	CreatedAt  time.Time       `json:"created_at"`
}

type WeekSavingsResult struct {
	Planned           decimal.Decimal `json:"planned"`
	Actual            decimal.Decimal `json:"actual"`
	Savings           decimal.Decimal `json:"savings"`
	SavingsPercent    int             `json:"savings_percent"`
	MealsCookedAtHome int             `json:"meals_cooked_at_home"`
}

// SavingsSnapshot is one persisted week, keyed by week start
type SavingsSnapshot struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	WeekStart     time.Time       `json:"week_start"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	ActualAmount  decimal.Decimal `json:"actual_amount"`
	SavingsAmount decimal.Decimal `json:"savings_amount"`
	MealsCooked   int             `json:"meals_cooked"`
	CreatedAt     time.Time       `json:"created_at"`
}

type AggregatedSavingsResult struct {
	TotalSaved decimal.Decimal `json:"total_saved"`
	AvgWeekly  decimal.Decimal `json:"avg_weekly"`
	BestWeek   decimal.Decimal `json:"best_week"`
	TotalWeeks int             `json:"total_weeks"`
}

// Smart defaults types

// TierCounts holds how often each tier was chosen
type TierCounts struct {
	Good   int `json:"good_count"`
	Better int `json:"better_count"`
	Best   int `json:"best_count"`
}

func (c TierCounts) Total() int {
	return c.Good + c.Better + c.Best
}

// Get returns the count for tier t
func (c TierCounts) Get(t Tier) int {
	switch t {
	case TierGood:
		return c.Good
	case TierBetter:
		return c.Better
	case TierBest:
		return c.Best
	}
	return 0
}

// Add increments the counter for tier t by n; unknown tiers are ignored
func (c *TierCounts) Add(t Tier, n int) {
	switch t {
	case TierGood:
		c.Good += n
	case TierBetter:
		c.Better += n
	case TierBest:
		c.Best += n
	}
}

// Top returns the most chosen tier and its count.
// Ties go to the lower tier.
func (c TierCounts) Top() (Tier, int) {
	top, topCount := TierGood, c.Good
	for _, t := range Tiers[1:] {
		if n := c.Get(t); n > topCount {
			top, topCount = t, n
		}
	}
	return top, topCount
}

// TierPreference is the persisted per-category counter row
type TierPreference struct {
	Category    IngredientCategory `json:"category"`
	Counts      TierCounts         `json:"counts"`
	DefaultTier Tier               `json:"default_tier"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type SmartDefaults struct {
	CategoryDefaults map[IngredientCategory]Tier `json:"category_defaults"`
	HasData          bool                        `json:"has_data"`
}

type CategoryConfidence struct {
	Category        IngredientCategory `json:"category"`
	Tier            Tier               `json:"tier"`
	TotalSelections int                `json:"total_selections"`
	Confidence      float64            `json:"confidence"`
	IsUsual         bool               `json:"is_usual"`
}

type TierOption struct {
	Tier  Tier            `json:"tier"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// TieredIngredient is a basket line item offered in several tiers
type TieredIngredient struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Category     IngredientCategory `json:"category"`
	SelectedTier Tier               `json:"selected_tier"`
	IsLocked     bool               `json:"is_locked"`
	Options      []TierOption       `json:"options"`
}

// HasOption reports whether the item is offered in tier t
func (i TieredIngredient) HasOption(t Tier) bool {
	for _, opt := range i.Options {
		if opt.Tier == t {
			return true
		}
	}
	return false
}

// TimeContext is the moment a basket is being built
type TimeContext struct {
	Hour      int  `json:"hour"`
	IsWeekend bool `json:"is_weekend"`
}

// TimeContextAt derives the context from a wall-clock time
func TimeContextAt(t time.Time) TimeContext {
	wd := t.Weekday()
	return TimeContext{
		Hour:      t.Hour(),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
