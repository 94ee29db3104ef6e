package scoring

import "github.com/noah-isme/progress-dashboard-api/internal/models"

// weightedSums accumulates Σ(percentage·weight) and Σ(weight). Course averages, forward
// projection and the inverse solve all go through it so they share one formula.
type weightedSums struct {
	weighted float64
	weight   float64
}

func (s *weightedSums) add(score, maxScore, weight float64) {
	if maxScore <= 0 {
		return
	}
	s.weighted += percentage(score, maxScore) * weight
	s.weight += weight
}

func (s weightedSums) plus(other weightedSums) weightedSums {
	return weightedSums{weighted: s.weighted + other.weighted, weight: s.weight + other.weight}
}

// mean returns the weighted mean, or fallback when no weight was accumulated.
func (s weightedSums) mean(fallback float64) float64 {
	if s.weight == 0 {
		return fallback
	}
	return s.weighted / s.weight
}

func sumAssessments(assessments []models.Assessment) weightedSums {
	var sums weightedSums
	for _, a := range assessments {
		sums.add(a.Score, a.MaxScore, a.Weight)
	}
	return sums
}

func sumFuture(future []FutureAssignment) weightedSums {
	var sums weightedSums
	for _, f := range future {
		sums.add(f.PredictedScore, f.MaxScore, f.Weight)
	}
	return sums
}

func percentage(score, maxScore float64) float64 {
	return score / maxScore * 100
}

// Percentage converts a raw score into a percentage of maxScore. A non-positive maxScore
// yields 0.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return percentage(score, maxScore)
}

// CourseAverage returns the weight-normalised mean percentage of the assessments. Weights
// are relative and need not sum to 100.
//
// An empty slice returns 0, which is indistinguishable from a genuine 0% average; check
// HasGrade before treating the result as a grade.
func CourseAverage(assessments []models.Assessment) float64 {
	return sumAssessments(assessments).mean(0)
}

// HasGrade reports whether a course has any recorded assessments and therefore a defined
// percentage.
func HasGrade(assessments []models.Assessment) bool {
	return len(assessments) > 0
}
