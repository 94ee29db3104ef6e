package models

import "time"

// FitnessMeasurement is a single recorded physical test result.
type FitnessMeasurement struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	ExerciseType string    `db:"exercise_type" json:"exercise_type"`
	Value        float64   `db:"value" json:"value"`
	TargetValue  *float64  `db:"target_value" json:"target_value,omitempty"`
	Unit         string    `db:"unit" json:"unit"`
	RecordedAt   time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
