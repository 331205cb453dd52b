// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"math"
	"regexp"
	"sort"

	"github.com/danielhkuo/nosh/models"
)

const (
	// AnswerWeight is the number of points one answer gives its personality
	AnswerWeight = 3

	baseConfidence = 0.4
	maxConfidence  = 0.95
)

var questionKey = regexp.MustCompile(`^q[0-9]+$`)

// Score maps a set of quiz answers to a personality classification.
// Keys that are not question IDs and values that are not known
// personality types are ignored. Score never fails.
func Score(answers map[string]string) models.PersonalityScoreResult {
	scores := make(map[models.PersonalityType]int, len(models.PersonalityTypes))
	for _, p := range models.PersonalityTypes {
		scores[p] = 0
	}

	for key, value := range answers {
		if !questionKey.MatchString(key) {
			continue
		}
		p := models.PersonalityType(value)
		if !p.Valid() {
			continue
		}
		scores[p] += AnswerWeight
	}

	// Rank by score, keeping declaration order among ties
	ranked := make([]models.PersonalityType, len(models.PersonalityTypes))
	copy(ranked, models.PersonalityTypes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	total := 0
	for _, s := range scores {
		total += s
	}

	result := models.PersonalityScoreResult{
		Primary:      ranked[0],
		PrimaryScore: scores[ranked[0]],
		Confidence:   confidence(scores[ranked[0]], total),
		AllScores:    scores,
	}

	if runnerUp := ranked[1]; scores[runnerUp] > 0 {
		result.Secondary = &runnerUp
		result.SecondaryScore = scores[runnerUp]
	}

	return result
}

// confidence grows with the primary's share of all points, in [0.4, 0.95]
func confidence(primaryScore, total int) float64 {
	if total == 0 {
		return baseConfidence
	}
	share := float64(primaryScore) / float64(total)
	return math.Min(maxConfidence, baseConfidence+share*0.5)
}
