package dto

import (
	"time"

	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
)

// StudentDashboardResponse is the combined academic and fitness snapshot for one student.
type StudentDashboardResponse struct {
	StudentID   string               `json:"student_id"`
	Academic    GradeSummaryResponse `json:"academic"`
	Fitness     FitnessSummary       `json:"fitness"`
	Highlights  DashboardHighlights  `json:"highlights"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// DashboardHighlights points the student at the courses that most need attention.
type DashboardHighlights struct {
	StrongestCourse *CourseGrade           `json:"strongest_course,omitempty"`
	WeakestCourse   *CourseGrade           `json:"weakest_course,omitempty"`
	WeakestExercise *scoring.ExerciseScore `json:"weakest_exercise,omitempty"`
	UngradedCourses int                    `json:"ungraded_courses"`
}
