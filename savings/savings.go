// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package savings

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/nosh/models"
)

// BlendedEatingOutCost is the cost of one meal eaten out, per person
var BlendedEatingOutCost = decimal.NewFromInt(28)

const centPlaces = 2

// CalculateWeek compares a week of home cooking against eating out.
// The window is [weekStart, weekStart+7 days). A household size below 1 is
// treated as 1.
func CalculateWeek(records []models.NoshRunRecord, weekStart time.Time, householdSize int) models.WeekSavingsResult {
	if householdSize < 1 {
		householdSize = 1
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	actual := decimal.Zero
	meals := 0
	for _, r := range records {
		if r.RunDate.Before(weekStart) || !r.RunDate.Before(weekEnd) {
			continue
		}
		actual = actual.Add(r.TotalSpent)
		meals++
	}

	planned := BlendedEatingOutCost.
		Mul(decimal.NewFromInt(int64(meals))).
		Mul(decimal.NewFromInt(int64(householdSize)))

	saved := planned.Sub(actual)
	if saved.IsNegative() {
		saved = decimal.Zero
	}

	percent := 0
	if planned.IsPositive() {
		percent = int(saved.Div(planned).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	return models.WeekSavingsResult{
		Planned:           planned.Round(centPlaces),
		Actual:            actual.Round(centPlaces),
		Savings:           saved.Round(centPlaces),
		SavingsPercent:    percent,
		MealsCookedAtHome: meals,
	}
}

// Aggregate rolls weekly snapshots up into totals.
// Snapshots are not deduplicated by week.
func Aggregate(snapshots []models.SavingsSnapshot) models.AggregatedSavingsResult {
	if len(snapshots) == 0 {
		return models.AggregatedSavingsResult{
			TotalSaved: decimal.Zero,
			AvgWeekly:  decimal.Zero,
			BestWeek:   decimal.Zero,
		}
	}

	total := decimal.Zero
	best := snapshots[0].SavingsAmount
	for _, s := range snapshots {
		total = total.Add(s.SavingsAmount)
		if s.SavingsAmount.GreaterThan(best) {
			best = s.SavingsAmount
		}
	}

	total = total.Round(centPlaces)
	count := decimal.NewFromInt(int64(len(snapshots)))
	return models.AggregatedSavingsResult{
		TotalSaved: total,
		AvgWeekly:  total.Div(count).Round(centPlaces),
		BestWeek:   best.Round(centPlaces),
		TotalWeeks: len(snapshots),
	}
}

// WeekStartOf returns midnight UTC of the Monday on or before t
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// FormatMoney renders an amount for display, e.g. "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	return "$" + humanize.FormatFloat("#,###.##", d.Round(centPlaces).InexactFloat64())
}
