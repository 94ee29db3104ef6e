package models

import "time"

// Course is a single enrolled course tracked on a student's dashboard.
type Course struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	Name       string    `db:"name" json:"name"`
	Code       string    `db:"code" json:"code"`
	Term       string    `db:"term" json:"term"`
	Credits    float64   `db:"credits" json:"credits"`
	IsWeighted bool      `db:"is_weighted" json:"is_weighted"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter scopes course listings.
type CourseFilter struct {
	StudentID string
	Term      string
	Page      int
	PageSize  int
}

// Pagination describes paged list metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
