// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package savings compares home cooking against eating out.

# Weekly Savings

CalculateWeek takes the nosh runs in [weekStart, weekStart+7 days):

	actual  = sum of total spent
	planned = meals * $28 * household size
	savings = max(0, planned - actual)

Amounts use decimal arithmetic and are rounded to cents in the result.

# History

Aggregate sums persisted weekly snapshots into total, average and best week.
An empty history aggregates to zeros.
*/
package savings
