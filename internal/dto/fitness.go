package dto

import "github.com/noah-isme/progress-dashboard-api/internal/scoring"

// FitnessSummary is the per-exercise breakdown and composite score.
type FitnessSummary struct {
	Gender         scoring.Gender          `json:"gender"`
	CompositeScore int                     `json:"composite_score"`
	Exercises      []scoring.ExerciseScore `json:"exercises"`
	Measurements   int                     `json:"measurements"`
}

// FitnessStandardRow is one line of the standards table for a gender.
type FitnessStandardRow struct {
	Exercise scoring.ExerciseType `json:"exercise"`
	Unit     string               `json:"unit"`
	scoring.Standard
}
