package scoring

import (
	"math"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

// CalculateGPA returns the credit-weighted GPA across courses, applying the weighted-course
// bonus. Courses without assessments are excluded from both numerator and denominator. When
// no course has assessments the GPA is 0. The result keeps full precision; use RoundGPA for
// display.
func CalculateGPA(courses []models.Course, assessments []models.Assessment) float64 {
	return calculateGPA(courses, groupByCourse(assessments), true)
}

// CalculateUnweightedGPA is CalculateGPA with the weighted-course bonus ignored.
func CalculateUnweightedGPA(courses []models.Course, assessments []models.Assessment) float64 {
	return calculateGPA(courses, groupByCourse(assessments), false)
}

func calculateGPA(courses []models.Course, byCourse map[string][]models.Assessment, applyBonus bool) float64 {
	var totalPoints, totalCredits float64
	for _, course := range courses {
		courseAssessments := byCourse[course.ID]
		if !HasGrade(courseAssessments) {
			continue
		}
		points := PercentageToGradePoints(CourseAverage(courseAssessments), applyBonus && course.IsWeighted)
		totalPoints += points * course.Credits
		totalCredits += course.Credits
	}
	if totalCredits == 0 {
		return 0
	}
	return totalPoints / totalCredits
}

// RoundGPA rounds a GPA to two decimal places for display.
func RoundGPA(gpa float64) float64 {
	return math.Round(gpa*100) / 100
}

// groupByCourse buckets assessments by course id, preserving input order within a course.
func groupByCourse(assessments []models.Assessment) map[string][]models.Assessment {
	byCourse := make(map[string][]models.Assessment)
	for _, a := range assessments {
		byCourse[a.CourseID] = append(byCourse[a.CourseID], a)
	}
	return byCourse
}
