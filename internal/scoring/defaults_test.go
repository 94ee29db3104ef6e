package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

func TestDefaultFutureAssignmentsWithoutHistory(t *testing.T) {
	future := DefaultFutureAssignments(nil)
	require.Len(t, future, 1)

	final := future[0]
	assert.Equal(t, "future-final-exam", final.ID)
	assert.Equal(t, models.AssessmentTypeExam, final.Type)
	assert.Equal(t, 20.0, final.Weight)
	assert.Equal(t, 100.0, final.MaxScore)
	assert.Equal(t, 85.0, final.PredictedScore)
}

func TestDefaultFutureAssignmentsMirrorsObservedTypes(t *testing.T) {
	current := []models.Assessment{
		{CourseID: "c", Type: models.AssessmentTypeHomework, Score: 18, MaxScore: 20, Weight: 5},
		{CourseID: "c", Type: models.AssessmentTypeHomework, Score: 16, MaxScore: 20, Weight: 5},
		{CourseID: "c", Type: models.AssessmentTypeQuiz, Score: 8, MaxScore: 10, Weight: 10},
		assessment("c", 80, 100, 30),
	}

	future := DefaultFutureAssignments(current)
	require.Len(t, future, 3)

	assert.Equal(t, "future-final-exam", future[0].ID)
	assert.Equal(t, 60.0, future[0].Weight)
	assert.InDelta(t, 81.0, future[0].PredictedScore, 1e-9)

	assert.Equal(t, "future-homework", future[1].ID)
	assert.Equal(t, 5.0, future[1].Weight)
	assert.Equal(t, 20.0, future[1].MaxScore)
	assert.InDelta(t, 16.2, future[1].PredictedScore, 1e-9)

	assert.Equal(t, "future-quiz", future[2].ID)
	assert.Equal(t, 10.0, future[2].Weight)
	assert.InDelta(t, 8.1, future[2].PredictedScore, 1e-9)

	for _, f := range future {
		assert.Greater(t, f.Weight, 0.0)
	}
}

func TestDefaultFutureAssignmentsKeepAverage(t *testing.T) {
	course := models.Course{ID: "c"}
	current := []models.Assessment{assessment("c", 70, 100, 10), assessment("c", 90, 100, 30)}

	prediction := PredictGrade(course, current, DefaultFutureAssignments(current))
	assert.InDelta(t, prediction.CurrentAverage, prediction.PredictedAverage, 1e-9)
}
