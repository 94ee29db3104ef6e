package scoring

import (
	"math"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

const (
	defaultFinalExamWeight = 20.0
	defaultMaxScore        = 100.0
	// defaultPredictedPercentage is assumed for courses without any graded work yet.
	defaultPredictedPercentage = 85.0
)

// placeholderTypes are mirrored into the default future set when the course has history of
// that type. Order is the order of the generated placeholders.
var placeholderTypes = []struct {
	kind  models.AssessmentType
	id    string
	title string
}{
	{models.AssessmentTypeHomework, "future-homework", "Upcoming Homework"},
	{models.AssessmentTypeQuiz, "future-quiz", "Upcoming Quiz"},
	{models.AssessmentTypeProject, "future-project", "Upcoming Project"},
	{models.AssessmentTypeLab, "future-lab", "Upcoming Lab"},
}

type typeStats struct {
	count    int
	weight   float64
	maxScore float64
}

// DefaultFutureAssignments proposes a plausible set of remaining work for a course based on
// what has been graded so far. The set always contains a final exam weighted at twice the
// heaviest recorded assessment (at least 20), followed by one placeholder for each of
// homework, quiz, project and lab that already occurs in the course. Predicted scores assume
// the student keeps their current average.
func DefaultFutureAssignments(current []models.Assessment) []FutureAssignment {
	predictedPct := defaultPredictedPercentage
	if HasGrade(current) {
		predictedPct = clampPercentage(CourseAverage(current))
	}

	stats := make(map[models.AssessmentType]*typeStats)
	heaviest := 0.0
	for _, a := range current {
		heaviest = math.Max(heaviest, a.Weight)
		st, ok := stats[a.Type]
		if !ok {
			st = &typeStats{}
			stats[a.Type] = st
		}
		st.count++
		st.weight += a.Weight
		st.maxScore += a.MaxScore
	}

	future := []FutureAssignment{{
		ID:             "future-final-exam",
		Title:          "Final Exam",
		Type:           models.AssessmentTypeExam,
		Weight:         math.Max(2*heaviest, defaultFinalExamWeight),
		PredictedScore: predictedPct * defaultMaxScore / 100,
		MaxScore:       defaultMaxScore,
	}}

	for _, p := range placeholderTypes {
		st, ok := stats[p.kind]
		if !ok || st.count == 0 {
			continue
		}
		weight := st.weight / float64(st.count)
		maxScore := st.maxScore / float64(st.count)
		if weight <= 0 || maxScore <= 0 {
			continue
		}
		future = append(future, FutureAssignment{
			ID:             p.id,
			Title:          p.title,
			Type:           p.kind,
			Weight:         weight,
			PredictedScore: predictedPct * maxScore / 100,
			MaxScore:       maxScore,
		})
	}
	return future
}

func clampPercentage(pct float64) float64 {
	return math.Max(0, math.Min(pct, 100))
}
