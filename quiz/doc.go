// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quiz scores the cooking-personality quiz.

# Scoring

Each answer is keyed by a question ID (q1, q2, ...) and names one of the
four personality types. A recognised answer adds 3 points to its type:

	result := quiz.Score(map[string]string{
		"q1": "thrill_seeker",
		"q2": "thrill_seeker",
		"q3": "ocd_planner",
	})
	// result.Primary == "thrill_seeker", result.PrimaryScore == 6

Other keys and unknown values are ignored. Score is pure and never fails.

# Ranking

Types are ranked by descending score. Ties keep declaration order:

	ocd_planner, humpday_nosher, weekend_warrior, thrill_seeker

The runner-up is reported as Secondary only when it scored above zero.

# Confidence

	total == 0  → 0.4
	otherwise   → min(0.95, 0.4 + primary/total * 0.5)
*/
package quiz
