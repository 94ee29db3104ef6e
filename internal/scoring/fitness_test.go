package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

func TestScoreForStandardHigherIsBetter(t *testing.T) {
	std := Standard{Min: 10, Max: 20}
	assert.Equal(t, 0.0, ScoreForStandard(5, std))
	assert.Equal(t, 0.0, ScoreForStandard(10, std))
	assert.Equal(t, 50.0, ScoreForStandard(15, std))
	assert.Equal(t, 100.0, ScoreForStandard(20, std))
	assert.Equal(t, 100.0, ScoreForStandard(25, std))
}

func TestScoreForStandardReversed(t *testing.T) {
	std := Standard{Min: 20, Max: 10, Reversed: true}
	assert.Equal(t, 0.0, ScoreForStandard(25, std))
	assert.Equal(t, 0.0, ScoreForStandard(20, std))
	assert.Equal(t, 50.0, ScoreForStandard(15, std))
	assert.Equal(t, 100.0, ScoreForStandard(10, std))
	assert.Equal(t, 100.0, ScoreForStandard(5, std))
}

func TestScoreForStandardIsMirrorImage(t *testing.T) {
	forward := Standard{Min: 10, Max: 20}
	reversed := Standard{Min: 20, Max: 10, Reversed: true}
	for v := 8.0; v <= 22; v += 0.25 {
		assert.InDelta(t, ScoreForStandard(v, forward), ScoreForStandard(30-v, reversed), 1e-9, "value %v", v)
	}
}

func TestScoreForStandardMonotonic(t *testing.T) {
	forward := Standard{Min: 3, Max: 17}
	reversed := Standard{Min: 840, Max: 390, Reversed: true}
	prevForward, prevReversed := -1.0, 101.0
	for v := 0.0; v <= 1000; v += 1.5 {
		f := ScoreForStandard(v, forward)
		r := ScoreForStandard(v, reversed)
		assert.GreaterOrEqual(t, f, prevForward)
		assert.LessOrEqual(t, r, prevReversed)
		assert.True(t, f >= 0 && f <= 100)
		assert.True(t, r >= 0 && r <= 100)
		prevForward, prevReversed = f, r
	}
}

func TestScoreForStandardDegenerateAndNaN(t *testing.T) {
	assert.Equal(t, 0.0, ScoreForStandard(math.NaN(), Standard{Min: 1, Max: 2}))
	assert.Equal(t, 0.0, ScoreForStandard(5, Standard{Min: 5, Max: 5}))
	assert.Equal(t, 100.0, ScoreForStandard(6, Standard{Min: 5, Max: 5}))
	assert.Equal(t, 100.0, ScoreForStandard(5, Standard{Min: 5, Max: 5, Reversed: true}))
	assert.Equal(t, 0.0, ScoreForStandard(6, Standard{Min: 5, Max: 5, Reversed: true}))
}

func TestStandardsTableCoversEveryExercise(t *testing.T) {
	for _, exercise := range Exercises() {
		for _, gender := range []Gender{GenderMale, GenderFemale} {
			std, ok := StandardFor(exercise, gender)
			require.True(t, ok, "%s/%s", exercise, gender)
			if std.Reversed {
				assert.Greater(t, std.Min, std.Max, "%s/%s", exercise, gender)
			} else {
				assert.Less(t, std.Min, std.Max, "%s/%s", exercise, gender)
			}
		}
		assert.NotEmpty(t, UnitFor(exercise))
	}
	_, ok := StandardFor("burpees", GenderMale)
	assert.False(t, ok)
}

func TestCompositeFitnessScoreSkipsMissingExercises(t *testing.T) {
	measurements := []models.FitnessMeasurement{
		{ExerciseType: "pushups", Value: 35},    // (35-10)/50 = 50
		{ExerciseType: "mile_run", Value: 525},  // 100 - (525-330)/390*100 = 50
		{ExerciseType: "pullups", Value: 20},    // 100
		{ExerciseType: "pushups", Value: 60},    // later duplicate ignored
		{ExerciseType: "yoga", Value: 1000},     // unknown ignored
	}
	assert.Equal(t, 67, CompositeFitnessScore(measurements, GenderMale))
	assert.Equal(t, 0, CompositeFitnessScore(nil, GenderMale))
	assert.Equal(t, 0, CompositeFitnessScore([]models.FitnessMeasurement{{ExerciseType: "yoga", Value: 3}}, GenderFemale))
}

func TestFitnessBreakdownTargets(t *testing.T) {
	target := 50.0
	measurements := []models.FitnessMeasurement{
		{ExerciseType: "situps", Value: 40, TargetValue: &target, Unit: "reps"},
		{ExerciseType: " Plank ", Value: 240},
	}

	breakdown := FitnessBreakdown(measurements, GenderMale)
	require.Len(t, breakdown, 2)

	assert.Equal(t, ExerciseSitups, breakdown[0].Exercise)
	assert.Equal(t, 50.0, breakdown[0].Score)
	require.NotNil(t, breakdown[0].TargetScore)
	assert.Equal(t, 75.0, *breakdown[0].TargetScore)
	assert.Equal(t, 25.0, *breakdown[0].PointsToTarget)

	assert.Equal(t, ExercisePlank, breakdown[1].Exercise)
	assert.Equal(t, "seconds", breakdown[1].Unit)
	assert.Equal(t, 100.0, breakdown[1].Score)
	assert.Nil(t, breakdown[1].TargetScore)
}

func TestScoreMeasurement(t *testing.T) {
	score, ok := ScoreMeasurement(models.FitnessMeasurement{ExerciseType: "sprint_40", Value: 6.5}, GenderFemale)
	require.True(t, ok)
	assert.InDelta(t, 50.0, score, 1e-9)

	_, ok = ScoreMeasurement(models.FitnessMeasurement{ExerciseType: "sprint_40", Value: 6.5}, "other")
	assert.False(t, ok)

	gender, ok := ParseGender(" Female")
	require.True(t, ok)
	assert.Equal(t, GenderFemale, gender)
}
