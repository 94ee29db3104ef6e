package scoring

import (
	"math"
	"strings"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

// ExerciseType identifies one of the built-in physical tests.
type ExerciseType string

const (
	ExercisePushups      ExerciseType = "pushups"
	ExerciseSitups       ExerciseType = "situps"
	ExercisePullups      ExerciseType = "pullups"
	ExercisePlank        ExerciseType = "plank"
	ExerciseMileRun      ExerciseType = "mile_run"
	ExerciseSprint40     ExerciseType = "sprint_40"
	ExerciseSitAndReach  ExerciseType = "sit_and_reach"
	ExerciseVerticalJump ExerciseType = "vertical_jump"
)

// Gender selects the standards table.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Standard maps a raw measurement range onto 0–100. For a reversed standard lower values are
// better, so Min is the slow end (scores 0) and Max the fast end (scores 100).
type Standard struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Reversed bool    `json:"is_reversed"`
}

// exercises is the fixed, ordered set scored by the composite index.
var exercises = []ExerciseType{
	ExercisePushups,
	ExerciseSitups,
	ExercisePullups,
	ExercisePlank,
	ExerciseMileRun,
	ExerciseSprint40,
	ExerciseSitAndReach,
	ExerciseVerticalJump,
}

var exerciseUnits = map[ExerciseType]string{
	ExercisePushups:      "reps",
	ExerciseSitups:       "reps",
	ExercisePullups:      "reps",
	ExercisePlank:        "seconds",
	ExerciseMileRun:      "seconds",
	ExerciseSprint40:     "seconds",
	ExerciseSitAndReach:  "cm",
	ExerciseVerticalJump: "cm",
}

var standards = map[ExerciseType]map[Gender]Standard{
	ExercisePushups: {
		GenderMale:   {Min: 10, Max: 60},
		GenderFemale: {Min: 5, Max: 40},
	},
	ExerciseSitups: {
		GenderMale:   {Min: 20, Max: 60},
		GenderFemale: {Min: 15, Max: 55},
	},
	ExercisePullups: {
		GenderMale:   {Min: 1, Max: 20},
		GenderFemale: {Min: 0, Max: 10},
	},
	ExercisePlank: {
		GenderMale:   {Min: 30, Max: 240},
		GenderFemale: {Min: 30, Max: 210},
	},
	ExerciseMileRun: {
		GenderMale:   {Min: 720, Max: 330, Reversed: true},
		GenderFemale: {Min: 840, Max: 390, Reversed: true},
	},
	ExerciseSprint40: {
		GenderMale:   {Min: 7.0, Max: 4.6, Reversed: true},
		GenderFemale: {Min: 7.8, Max: 5.2, Reversed: true},
	},
	ExerciseSitAndReach: {
		GenderMale:   {Min: 15, Max: 45},
		GenderFemale: {Min: 20, Max: 50},
	},
	ExerciseVerticalJump: {
		GenderMale:   {Min: 25, Max: 75},
		GenderFemale: {Min: 20, Max: 60},
	},
}

// Exercises returns the scored exercise set in display order.
func Exercises() []ExerciseType {
	out := make([]ExerciseType, len(exercises))
	copy(out, exercises)
	return out
}

// ParseExerciseType reports whether raw names a built-in exercise.
func ParseExerciseType(raw string) (ExerciseType, bool) {
	candidate := ExerciseType(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := standards[candidate]
	return candidate, ok
}

// ParseGender reports whether raw names a gender with a standards table.
func ParseGender(raw string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale:
		return g, true
	default:
		return "", false
	}
}

// UnitFor returns the unit measurements of the exercise are expected in.
func UnitFor(exercise ExerciseType) string {
	return exerciseUnits[exercise]
}

// StandardFor looks up the built-in standard for an exercise and gender.
func StandardFor(exercise ExerciseType, gender Gender) (Standard, bool) {
	byGender, ok := standards[exercise]
	if !ok {
		return Standard{}, false
	}
	std, ok := byGender[gender]
	return std, ok
}

// ScoreForStandard maps value onto 0–100 against std by linear interpolation, saturating at
// both ends. NaN scores 0.
func ScoreForStandard(value float64, std Standard) float64 {
	if math.IsNaN(value) {
		return 0
	}
	if std.Reversed {
		return 100 - 100*progress(value, std.Max, std.Min)
	}
	return 100 * progress(value, std.Min, std.Max)
}

// progress is the fraction of the way value has travelled from lo to hi, clamped to [0, 1].
// The lo check wins when lo == hi.
func progress(value, lo, hi float64) float64 {
	switch {
	case value <= lo:
		return 0
	case value >= hi:
		return 1
	default:
		return (value - lo) / (hi - lo)
	}
}

// ScoreMeasurement scores a measurement against the standard for its exercise. ok is false
// for exercise types outside the built-in set.
func ScoreMeasurement(m models.FitnessMeasurement, gender Gender) (float64, bool) {
	exercise, ok := ParseExerciseType(m.ExerciseType)
	if !ok {
		return 0, false
	}
	std, ok := StandardFor(exercise, gender)
	if !ok {
		return 0, false
	}
	return ScoreForStandard(m.Value, std), true
}

// ExerciseScore is one exercise's contribution to the fitness index.
type ExerciseScore struct {
	Exercise    ExerciseType `json:"exercise"`
	Value       float64      `json:"value"`
	Unit        string       `json:"unit"`
	Score       float64      `json:"score"`
	TargetValue *float64     `json:"target_value,omitempty"`
	TargetScore *float64     `json:"target_score,omitempty"`
	// PointsToTarget is how many score points separate the current value from the target.
	PointsToTarget *float64 `json:"points_to_target,omitempty"`
}

// FitnessBreakdown scores the first measurement recorded for each built-in exercise, in the
// fixed exercise order. Exercises without a measurement are omitted.
func FitnessBreakdown(measurements []models.FitnessMeasurement, gender Gender) []ExerciseScore {
	first := make(map[ExerciseType]models.FitnessMeasurement, len(exercises))
	for _, m := range measurements {
		exercise, ok := ParseExerciseType(m.ExerciseType)
		if !ok {
			continue
		}
		if _, seen := first[exercise]; !seen {
			first[exercise] = m
		}
	}

	breakdown := make([]ExerciseScore, 0, len(first))
	for _, exercise := range exercises {
		m, ok := first[exercise]
		if !ok {
			continue
		}
		std, ok := StandardFor(exercise, gender)
		if !ok {
			continue
		}
		unit := m.Unit
		if unit == "" {
			unit = UnitFor(exercise)
		}
		entry := ExerciseScore{
			Exercise: exercise,
			Value:    m.Value,
			Unit:     unit,
			Score:    ScoreForStandard(m.Value, std),
		}
		if m.TargetValue != nil {
			target := *m.TargetValue
			targetScore := ScoreForStandard(target, std)
			gap := math.Max(0, targetScore-entry.Score)
			entry.TargetValue = &target
			entry.TargetScore = &targetScore
			entry.PointsToTarget = &gap
		}
		breakdown = append(breakdown, entry)
	}
	return breakdown
}

// CompositeFitnessScore averages the per-exercise scores of the built-in exercises that have
// a measurement, rounded to the nearest integer. Missing exercises are skipped rather than
// scored as 0; no measurements at all gives 0.
func CompositeFitnessScore(measurements []models.FitnessMeasurement, gender Gender) int {
	breakdown := FitnessBreakdown(measurements, gender)
	if len(breakdown) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range breakdown {
		total += entry.Score
	}
	return int(math.Round(total / float64(len(breakdown))))
}
