package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

func TestCalculateGPAImpact(t *testing.T) {
	courses := []models.Course{
		{ID: "math", Name: "Math", Credits: 4},
		{ID: "hist", Name: "History", Credits: 2},
		{ID: "none", Name: "No data", Credits: 3},
	}
	byCourse := map[string][]models.Assessment{
		"math": {assessment("math", 84, 100, 1)}, // B
		"hist": {assessment("hist", 91, 100, 1)}, // A-
	}
	predictions := []CourseGradePrediction{
		{CourseID: "math", PredictedLetter: GradeA},
		{CourseID: "none", PredictedLetter: GradeAPlus},
	}

	impact := CalculateGPAImpact(courses, byCourse, predictions)

	assert.InDelta(t, (3.0*4+3.7*2)/6, impact.CurrentGPA, 1e-9)
	assert.InDelta(t, (4.0*4+3.7*2)/6, impact.PredictedGPA, 1e-9)
	assert.InDelta(t, impact.PredictedGPA-impact.CurrentGPA, impact.Difference, 1e-12)
}

func TestCalculateGPAImpactAppliesWeightedBonusToBoth(t *testing.T) {
	courses := []models.Course{{ID: "ap", Credits: 1, IsWeighted: true}}
	byCourse := map[string][]models.Assessment{"ap": {assessment("ap", 75, 100, 1)}} // C
	predictions := []CourseGradePrediction{{CourseID: "ap", PredictedLetter: GradeB}}

	impact := CalculateGPAImpact(courses, byCourse, predictions)
	assert.InDelta(t, 3.0, impact.CurrentGPA, 1e-9)
	assert.InDelta(t, 4.0, impact.PredictedGPA, 1e-9)
}

func TestCalculateGPAImpactMatchesPredictGrade(t *testing.T) {
	course, current, future := projectionFixture()
	prediction := PredictGrade(course, current, WithPredictedScore(future, "final", 100))

	impact := CalculateGPAImpact([]models.Course{course}, map[string][]models.Assessment{course.ID: current}, []CourseGradePrediction{prediction})
	require.Equal(t, GradeC, prediction.CurrentLetter)
	assert.InDelta(t, 2.0, impact.CurrentGPA, 1e-9)
	assert.InDelta(t, LetterGradeToPoints(prediction.PredictedLetter, false), impact.PredictedGPA, 1e-9)
}

func TestCalculateGPAImpactNoCredits(t *testing.T) {
	impact := CalculateGPAImpact([]models.Course{{ID: "x", Credits: 3}}, nil, nil)
	assert.Equal(t, GPAImpact{}, impact)
}
