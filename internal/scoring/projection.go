package scoring

import (
	"math"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

// FutureAssignment is a hypothetical piece of graded work used only for projection. It is a
// value supplied by the caller and never persisted.
type FutureAssignment struct {
	ID             string                `json:"id" validate:"required"`
	Title          string                `json:"title"`
	Type           models.AssessmentType `json:"type,omitempty"`
	Weight         float64               `json:"weight" validate:"gt=0"`
	PredictedScore float64               `json:"predicted_score" validate:"gte=0"`
	MaxScore       float64               `json:"max_score" validate:"gt=0"`
}

// CourseGradePrediction compares a course's current standing with its projected standing
// once the future assignments are graded. CurrentGraded is false when the course has no
// assessments, in which case CurrentAverage carries no grade.
type CourseGradePrediction struct {
	CourseID          string             `json:"course_id"`
	CourseName        string             `json:"course_name"`
	CurrentAverage    float64            `json:"current_average"`
	CurrentLetter     LetterGrade        `json:"current_letter,omitempty"`
	CurrentGraded     bool               `json:"current_graded"`
	PredictedAverage  float64            `json:"predicted_average"`
	PredictedLetter   LetterGrade        `json:"predicted_letter"`
	FutureAssignments []FutureAssignment `json:"future_assignments"`
}

// PredictGrade blends the current assessments with the predicted scores of the future
// assignments. With no future assignments the prediction is exactly the current average.
func PredictGrade(course models.Course, current []models.Assessment, future []FutureAssignment) CourseGradePrediction {
	currentSums := sumAssessments(current)
	currentAverage := currentSums.mean(0)

	predictedAverage := currentAverage
	if len(future) > 0 {
		predictedAverage = currentSums.plus(sumFuture(future)).mean(currentAverage)
	}

	return CourseGradePrediction{
		CourseID:          course.ID,
		CourseName:        course.Name,
		CurrentAverage:    currentAverage,
		CurrentLetter:     PercentageToLetterGrade(currentAverage),
		CurrentGraded:     HasGrade(current),
		PredictedAverage:  predictedAverage,
		PredictedLetter:   PercentageToLetterGrade(predictedAverage),
		FutureAssignments: future,
	}
}

// RequiredScore is the outcome of solving for the raw score one future assignment needs.
type RequiredScore struct {
	CourseID     string  `json:"course_id"`
	AssignmentID string  `json:"assignment_id"`
	Target       float64 `json:"target_percentage"`
	// Score is the raw score clamped to [0, MaxScore].
	Score    float64 `json:"required_score"`
	MaxScore float64 `json:"max_score"`
	// Percentage is Score expressed as a percentage of MaxScore.
	Percentage float64 `json:"required_percentage"`
	// Unclamped is the algebraic solution before clamping.
	Unclamped float64 `json:"unclamped_score"`
	// Achievable is false when the target needs a score outside [0, MaxScore].
	Achievable bool `json:"achievable"`
}

// SolveRequiredScore finds the raw score the assignment identified by targetID must earn for
// the course to finish at targetPercentage, with every other future assignment taken at its
// predicted score. The result is clamped to [0, MaxScore]; compare Score with Unclamped (or
// read Achievable) to detect an infeasible target.
//
// ok is false when targetID matches no future assignment, or the match has no positive
// weight or max score to solve against.
func SolveRequiredScore(targetPercentage float64, course models.Course, current []models.Assessment, future []FutureAssignment, targetID string) (RequiredScore, bool) {
	target, known, found := partitionFuture(future, targetID)
	if !found || target.Weight <= 0 || target.MaxScore <= 0 {
		return RequiredScore{}, false
	}

	fixed := sumAssessments(current).plus(sumFuture(known))
	totalWeight := fixed.weight + target.Weight

	requiredPercentage := (targetPercentage*totalWeight - fixed.weighted) / target.Weight
	unclamped := requiredPercentage * target.MaxScore / 100
	score := math.Max(0, math.Min(unclamped, target.MaxScore))

	return RequiredScore{
		CourseID:     course.ID,
		AssignmentID: target.ID,
		Target:       targetPercentage,
		Score:        score,
		MaxScore:     target.MaxScore,
		Percentage:   Percentage(score, target.MaxScore),
		Unclamped:    unclamped,
		Achievable:   unclamped >= 0 && unclamped <= target.MaxScore,
	}, true
}

// RequiredScoreFor is SolveRequiredScore reduced to the clamped raw score.
func RequiredScoreFor(targetPercentage float64, course models.Course, current []models.Assessment, future []FutureAssignment, targetID string) (float64, bool) {
	result, ok := SolveRequiredScore(targetPercentage, course, current, future, targetID)
	if !ok {
		return 0, false
	}
	return result.Score, true
}

// WithPredictedScore returns a copy of future where the first assignment matching id carries
// the given predicted score.
func WithPredictedScore(future []FutureAssignment, id string, predictedScore float64) []FutureAssignment {
	out := make([]FutureAssignment, len(future))
	copy(out, future)
	for i := range out {
		if out[i].ID == id {
			out[i].PredictedScore = predictedScore
			break
		}
	}
	return out
}

func partitionFuture(future []FutureAssignment, targetID string) (FutureAssignment, []FutureAssignment, bool) {
	var (
		target FutureAssignment
		found  bool
	)
	known := make([]FutureAssignment, 0, len(future))
	for _, f := range future {
		if !found && f.ID == targetID {
			target = f
			found = true
			continue
		}
		known = append(known, f)
	}
	return target, known, found
}
