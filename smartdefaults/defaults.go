// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package smartdefaults

import (
	"github.com/danielhkuo/nosh/models"
)

// FallbackDefaults maps every category to the fallback tier
func FallbackDefaults() models.SmartDefaults {
	defaults := make(map[models.IngredientCategory]models.Tier, len(models.IngredientCategories))
	for _, c := range models.IngredientCategories {
		defaults[c] = FallbackTier
	}
	return models.SmartDefaults{CategoryDefaults: defaults}
}

// gate returns the winning tier and whether it passed both the sample size
// and the share threshold
func gate(counts models.TierCounts) (models.Tier, float64, bool) {
	total := counts.Total()
	top, topCount := counts.Top()
	if total == 0 {
		return top, 0, false
	}
	confidence := float64(topCount) / float64(total)
	return top, confidence, total >= MinSelections && confidence >= ConfidenceThreshold
}

// Learn turns counter rows into smart defaults. Rows for unknown categories
// are skipped.
func Learn(prefs []models.TierPreference) models.SmartDefaults {
	defaults := FallbackDefaults()
	for _, pref := range prefs {
		if !pref.Category.Valid() {
			continue
		}
		tier, _, confident := gate(pref.Counts)
		if !confident {
			continue
		}
		defaults.CategoryDefaults[pref.Category] = tier
		defaults.HasData = true
	}
	return defaults
}

// Confidence lists the gate inputs per stored category
func Confidence(prefs []models.TierPreference) []models.CategoryConfidence {
	out := make([]models.CategoryConfidence, 0, len(prefs))
	for _, pref := range prefs {
		if !pref.Category.Valid() {
			continue
		}
		tier, confidence, usual := gate(pref.Counts)
		out = append(out, models.CategoryConfidence{
			Category:        pref.Category,
			Tier:            tier,
			TotalSelections: pref.Counts.Total(),
			Confidence:      confidence,
			IsUsual:         usual,
		})
	}
	return out
}

// ApplyTimeAwareness steps "best" down to "better" on weekday evenings
// (17:00 to 20:59). Other tiers and weekends are left alone.
func ApplyTimeAwareness(defaults models.SmartDefaults, tc models.TimeContext) models.SmartDefaults {
	if !defaults.HasData {
		return defaults
	}

	adjusted := models.SmartDefaults{
		CategoryDefaults: make(map[models.IngredientCategory]models.Tier, len(defaults.CategoryDefaults)),
		HasData:          defaults.HasData,
	}
	rush := !tc.IsWeekend && tc.Hour >= rushHourStart && tc.Hour <= rushHourEnd
	for category, tier := range defaults.CategoryDefaults {
		if rush && tier == models.TierBest {
			tier = models.TierBetter
		}
		adjusted.CategoryDefaults[category] = tier
	}
	return adjusted
}

// Apply sets each unlocked item to its category's learned tier when the
// item offers that tier. The input slice is not modified.
func Apply(items []models.TieredIngredient, defaults models.SmartDefaults) []models.TieredIngredient {
	if !defaults.HasData {
		return items
	}

	out := make([]models.TieredIngredient, len(items))
	copy(out, items)
	for i := range out {
		if out[i].IsLocked {
			continue
		}
		tier, ok := defaults.CategoryDefaults[out[i].Category]
		if !ok {
			tier = FallbackTier
		}
		if out[i].HasOption(tier) {
			out[i].SelectedTier = tier
		}
	}
	return out
}

// CountSelections tallies the selected tier of each item by category.
// Items with an unknown category or tier are not counted.
func CountSelections(items []models.TieredIngredient) map[models.IngredientCategory]models.TierCounts {
	counts := make(map[models.IngredientCategory]models.TierCounts)
	for _, item := range items {
		if !item.Category.Valid() || !item.SelectedTier.Valid() {
			continue
		}
		c := counts[item.Category]
		c.Add(item.SelectedTier, 1)
		counts[item.Category] = c
	}
	return counts
}
