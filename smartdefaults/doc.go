// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package smartdefaults learns which price/quality tier a user usually picks
for each ingredient category and pre-selects it in new baskets.

# Learning

Counters are stored per user and category (good, better, best). Every read
recomputes the defaults from the raw counters:

	learner := smartdefaults.NewLearner(store)
	outcome := learner.Build(ctx, userID)
	defaults := outcome.Value

A category moves off the fallback tier ("good") only when both gates pass:

	total selections >= 3
	winning tier count / total >= 0.6

Ties go to the lower tier. HasData is true when at least one category passed.

# Failures

Reads never fail. When the store is unreachable, Build returns the all-"good"
fallback and DetailedConfidence returns an empty list, both with Degraded set
and Err holding the cause. Writes (RecordSelections, Reset, LogApplied) log
and return their errors so callers can choose to ignore them.

# Time Awareness

On weekday evenings (hours 17 through 20) ApplyTimeAwareness steps "best"
down to "better". Weekends are never adjusted.

# Applying

Apply never changes a locked item, and never selects a tier the item does
not offer:

	basket = smartdefaults.Apply(basket, defaults)

# Recording

RecordSelections counts the final tier of each basket item by category.
In RecordAccumulate mode (default) the store adds the counts to the stored
counters in one atomic write; in RecordSession mode they replace them.
*/
package smartdefaults
