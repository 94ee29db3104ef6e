package dto

import "github.com/noah-isme/progress-dashboard-api/internal/scoring"

// CourseGrade is the current standing in a single course.
type CourseGrade struct {
	CourseID    string              `json:"course_id"`
	Name        string              `json:"name"`
	Code        string              `json:"code,omitempty"`
	Credits     float64             `json:"credits"`
	IsWeighted  bool                `json:"is_weighted"`
	Graded      bool                `json:"graded"`
	Assessments int                 `json:"assessments"`
	Average     float64             `json:"average"`
	Letter      scoring.LetterGrade `json:"letter"`
	Points      float64             `json:"points"`
}

// GradeSummaryResponse lists every course with the aggregate GPAs.
type GradeSummaryResponse struct {
	Term          string        `json:"term,omitempty"`
	Courses       []CourseGrade `json:"courses"`
	GPA           float64       `json:"gpa"`
	UnweightedGPA float64       `json:"unweighted_gpa"`
	GradedCredits float64       `json:"graded_credits"`
	TotalCourses  int           `json:"total_courses"`
	GradedCourses int           `json:"graded_courses"`
}

// GPAImpactResponse pairs the GPA impact with the per-course predictions it was built from.
type GPAImpactResponse struct {
	Impact      scoring.GPAImpact               `json:"impact"`
	Predictions []scoring.CourseGradePrediction `json:"predictions"`
}

// RequiredScoreResponse is the inverse solve plus the projection the required score produces.
type RequiredScoreResponse struct {
	scoring.RequiredScore
	Projection scoring.CourseGradePrediction `json:"projection"`
}
