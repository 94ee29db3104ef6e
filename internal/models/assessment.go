package models

import "time"

// AssessmentType tags graded work. It is informational only and never changes scoring.
type AssessmentType string

const (
	AssessmentTypeHomework AssessmentType = "homework"
	AssessmentTypeQuiz     AssessmentType = "quiz"
	AssessmentTypeTest     AssessmentType = "test"
	AssessmentTypeExam     AssessmentType = "exam"
	AssessmentTypeProject  AssessmentType = "project"
	AssessmentTypeLab      AssessmentType = "lab"
	AssessmentTypeOther    AssessmentType = "other"
)

// Assessment is a recorded piece of graded work belonging to one course.
type Assessment struct {
	ID         string         `db:"id" json:"id"`
	CourseID   string         `db:"course_id" json:"course_id"`
	Title      string         `db:"title" json:"title"`
	Type       AssessmentType `db:"type" json:"type"`
	Score      float64        `db:"score" json:"score"`
	MaxScore   float64        `db:"max_score" json:"max_score"`
	Weight     float64        `db:"weight" json:"weight"`
	AssessedOn time.Time      `db:"assessed_on" json:"assessed_on"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}
