// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import "github.com/danielhkuo/nosh/models"

var profiles = map[models.PersonalityType]models.PersonalityProfile{
	models.PersonalityOCDPlanner: {
		Type:    models.PersonalityOCDPlanner,
		Title:   "The OCD Planner",
		Tagline: "Every meal mapped out by Sunday night.",
	},
	models.PersonalityHumpdayNosher: {
		Type:    models.PersonalityHumpdayNosher,
		Title:   "The Humpday Nosher",
		Tagline: "Strong start, then midweek takeout creeps in.",
	},
	models.PersonalityWeekendWarrior: {
		Type:    models.PersonalityWeekendWarrior,
		Title:   "The Weekend Warrior",
		Tagline: "Big weekend cooks, weekday leftovers.",
	},
	models.PersonalityThrillSeeker: {
		Type:    models.PersonalityThrillSeeker,
		Title:   "The Thrill Seeker",
		Tagline: "New recipe, new cuisine, every time.",
	},
}

// Profile returns the display profile for a personality type
func Profile(p models.PersonalityType) models.PersonalityProfile {
	if profile, ok := profiles[p]; ok {
		return profile
	}
	return models.PersonalityProfile{Type: p, Title: string(p)}
}
