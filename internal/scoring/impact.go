package scoring

import "github.com/noah-isme/progress-dashboard-api/internal/models"

// GPAImpact compares the GPA today with the GPA once every projection comes true.
type GPAImpact struct {
	CurrentGPA   float64 `json:"current_gpa"`
	PredictedGPA float64 `json:"predicted_gpa"`
	Difference   float64 `json:"difference"`
}

// CalculateGPAImpact aggregates current and predicted grade points over the courses that
// have at least one assessment. Both GPAs share one credit denominator. A course without a
// matching prediction contributes its current points to the predicted GPA.
func CalculateGPAImpact(courses []models.Course, assessmentsByCourse map[string][]models.Assessment, predictions []CourseGradePrediction) GPAImpact {
	byCourse := make(map[string]CourseGradePrediction, len(predictions))
	for _, p := range predictions {
		if _, seen := byCourse[p.CourseID]; !seen {
			byCourse[p.CourseID] = p
		}
	}

	var currentTotal, predictedTotal, credits float64
	for _, course := range courses {
		current := assessmentsByCourse[course.ID]
		if !HasGrade(current) {
			continue
		}
		currentPoints := LetterGradeToPoints(PercentageToLetterGrade(CourseAverage(current)), course.IsWeighted)
		predictedPoints := currentPoints
		if prediction, ok := byCourse[course.ID]; ok {
			predictedPoints = LetterGradeToPoints(prediction.PredictedLetter, course.IsWeighted)
		}
		currentTotal += currentPoints * course.Credits
		predictedTotal += predictedPoints * course.Credits
		credits += course.Credits
	}

	if credits == 0 {
		return GPAImpact{}
	}
	currentGPA := currentTotal / credits
	predictedGPA := predictedTotal / credits
	return GPAImpact{
		CurrentGPA:   currentGPA,
		PredictedGPA: predictedGPA,
		Difference:   predictedGPA - currentGPA,
	}
}
