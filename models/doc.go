// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request and response types for the API.

# Enumerations

Declaration order matters. PersonalityTypes is the quiz tie-break order and
Tiers is ascending (good < better < best):

	PersonalityOCDPlanner, PersonalityHumpdayNosher,
	PersonalityWeekendWarrior, PersonalityThrillSeeker

	TierGood, TierBetter, TierBest

IngredientCategories lists the eight basket categories.

# Domain Types

  - PersonalityScoreResult, PersonalityProfile, QuizResult
  - NoshRunRecord, WeekSavingsResult, SavingsSnapshot, AggregatedSavingsResult
  - TierCounts, TierPreference, SmartDefaults, CategoryConfidence
  - TieredIngredient, TierOption, TimeContext
  - User

Money fields use decimal.Decimal and encode as JSON strings.

# Request Types

  - RegisterUserRequest: display_name
  - ScoreQuizRequest: answers (question key → personality type)
  - CreateNoshRunRequest: run_date, total_spent
  - SaveSnapshotRequest: week_start, household_size
  - ApplyDefaultsRequest: items, at
  - RecordSelectionsRequest: items

# Response Types

  - RegisterUserResponse: user_id, user_token
  - ScoreQuizResponse: result_id, result, profile
  - WeekSavingsResponse, SavingsSummaryResponse, NoshRunListResponse
  - SmartDefaultsResponse, ConfidenceResponse, ApplyDefaultsResponse
  - RecordSelectionsResponse, ResetDefaultsResponse
  - ErrorResponse: error, message
*/
package models
