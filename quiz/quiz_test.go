// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"math"
	"reflect"
	"testing"

	"github.com/danielhkuo/nosh/models"
)

func TestScore(t *testing.T) {
	result := Score(map[string]string{
		"q1": "thrill_seeker",
		"q2": "thrill_seeker",
		"q3": "ocd_planner",
	})

	expectedScores := map[models.PersonalityType]int{
		models.PersonalityThrillSeeker:   6,
		models.PersonalityOCDPlanner:     3,
		models.PersonalityHumpdayNosher:  0,
		models.PersonalityWeekendWarrior: 0,
	}
	if !reflect.DeepEqual(result.AllScores, expectedScores) {
		t.Errorf("Expected scores %v, got %v", expectedScores, result.AllScores)
	}

	if result.Primary != models.PersonalityThrillSeeker {
		t.Errorf("Expected primary thrill_seeker, got %s", result.Primary)
	}
	if result.PrimaryScore != 6 {
		t.Errorf("Expected primary score 6, got %d", result.PrimaryScore)
	}
	if result.Secondary == nil || *result.Secondary != models.PersonalityOCDPlanner {
		t.Errorf("Expected secondary ocd_planner, got %v", result.Secondary)
	}
	if result.SecondaryScore != 3 {
		t.Errorf("Expected secondary score 3, got %d", result.SecondaryScore)
	}

	expectedConfidence := 0.4 + (6.0/9.0)*0.5
	if math.Abs(result.Confidence-expectedConfidence) > 1e-9 {
		t.Errorf("Expected confidence %.4f, got %.4f", expectedConfidence, result.Confidence)
	}
}

func TestScore_EmptyAnswers(t *testing.T) {
	result := Score(nil)

	if result.Confidence != 0.4 {
		t.Errorf("Expected confidence 0.4 for empty answers, got %f", result.Confidence)
	}
	if result.Primary != models.PersonalityOCDPlanner {
		t.Errorf("Expected first declared type as primary, got %s", result.Primary)
	}
	if result.PrimaryScore != 0 {
		t.Errorf("Expected primary score 0, got %d", result.PrimaryScore)
	}
	if result.Secondary != nil {
		t.Errorf("Expected no secondary, got %s", *result.Secondary)
	}
	if len(result.AllScores) != len(models.PersonalityTypes) {
		t.Errorf("Expected all %d types in scores, got %d", len(models.PersonalityTypes), len(result.AllScores))
	}
}

func TestScore_IgnoresUnknownKeysAndValues(t *testing.T) {
	result := Score(map[string]string{
		"q1":        "weekend_warrior",
		"name":      "thrill_seeker",
		"question2": "thrill_seeker",
		"q":         "thrill_seeker",
		"q3x":       "thrill_seeker",
		"q4":        "pizza_lover",
	})

	if result.AllScores[models.PersonalityWeekendWarrior] != 3 {
		t.Errorf("Expected weekend_warrior=3, got %d", result.AllScores[models.PersonalityWeekendWarrior])
	}
	if result.AllScores[models.PersonalityThrillSeeker] != 0 {
		t.Errorf("Expected thrill_seeker=0, got %d", result.AllScores[models.PersonalityThrillSeeker])
	}
	// A single scored answer owns the whole total
	if math.Abs(result.Confidence-0.9) > 1e-9 {
		t.Errorf("Expected confidence 0.9, got %f", result.Confidence)
	}
}

func TestScore_TieBreakFollowsDeclarationOrder(t *testing.T) {
	result := Score(map[string]string{
		"q1": "thrill_seeker",
		"q2": "weekend_warrior",
		"q3": "humpday_nosher",
		"q4": "ocd_planner",
	})

	if result.Primary != models.PersonalityOCDPlanner {
		t.Errorf("Expected ocd_planner on a four-way tie, got %s", result.Primary)
	}
	if result.Secondary == nil || *result.Secondary != models.PersonalityHumpdayNosher {
		t.Errorf("Expected humpday_nosher as secondary on a four-way tie, got %v", result.Secondary)
	}
	if math.Abs(result.Confidence-0.525) > 1e-9 {
		t.Errorf("Expected confidence 0.525, got %f", result.Confidence)
	}
}

func TestScore_Deterministic(t *testing.T) {
	answers := map[string]string{
		"q1": "humpday_nosher",
		"q2": "weekend_warrior",
		"q3": "humpday_nosher",
		"q4": "weekend_warrior",
		"q5": "thrill_seeker",
	}

	first := Score(answers)
	for i := 0; i < 50; i++ {
		if got := Score(answers); !reflect.DeepEqual(first, got) {
			t.Fatalf("Score is not deterministic: %+v vs %+v", first, got)
		}
	}

	if first.Primary != models.PersonalityHumpdayNosher {
		t.Errorf("Expected humpday_nosher to win the tie with weekend_warrior, got %s", first.Primary)
	}
}

func TestScore_ConfidenceBounds(t *testing.T) {
	cases := []map[string]string{
		{},
		{"q1": "ocd_planner"},
		{"q1": "ocd_planner", "q2": "thrill_seeker"},
		{"q1": "ocd_planner", "q2": "ocd_planner", "q3": "ocd_planner", "q4": "ocd_planner"},
		{"q1": "ocd_planner", "q2": "thrill_seeker", "q3": "weekend_warrior", "q4": "humpday_nosher", "q5": "ocd_planner"},
	}

	for _, answers := range cases {
		result := Score(answers)
		if result.Confidence < 0.4 || result.Confidence > 0.95 {
			t.Errorf("Confidence %f out of bounds for %v", result.Confidence, answers)
		}
		if len(answers) > 0 && result.Confidence == 0.4 {
			t.Errorf("Confidence should exceed 0.4 when answers were scored: %v", answers)
		}
	}
}

func TestProfile(t *testing.T) {
	for _, p := range models.PersonalityTypes {
		profile := Profile(p)
		if profile.Type != p {
			t.Errorf("Expected profile type %s, got %s", p, profile.Type)
		}
		if profile.Title == "" || profile.Tagline == "" {
			t.Errorf("Profile for %s is incomplete: %+v", p, profile)
		}
	}
}
