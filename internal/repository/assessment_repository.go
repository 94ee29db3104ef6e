package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

const assessmentColumns = "id, course_id, title, type, score, max_score, weight, assessed_on, created_at, updated_at"

// AssessmentRepository manages persistence for graded work.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListByCourse returns a course's assessments ordered by assessment date.
func (r *AssessmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Assessment, error) {
	query := "SELECT " + assessmentColumns + " FROM assessments WHERE course_id = $1 ORDER BY assessed_on ASC, created_at ASC"
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, courseID); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// ListByCourses loads assessments for several courses in one query, grouped by course ID.
func (r *AssessmentRepository) ListByCourses(ctx context.Context, courseIDs []string) (map[string][]models.Assessment, error) {
	grouped := make(map[string][]models.Assessment, len(courseIDs))
	if len(courseIDs) == 0 {
		return grouped, nil
	}

	query := "SELECT " + assessmentColumns + " FROM assessments WHERE course_id = ANY($1) ORDER BY course_id, assessed_on ASC, created_at ASC"
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, pq.Array(courseIDs)); err != nil {
		return nil, fmt.Errorf("list assessments by courses: %w", err)
	}
	for _, a := range assessments {
		grouped[a.CourseID] = append(grouped[a.CourseID], a)
	}
	return grouped, nil
}

// FindByID fetches an assessment by ID.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := "SELECT " + assessmentColumns + " FROM assessments WHERE id = $1"
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create inserts a new assessment.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	if assessment.AssessedOn.IsZero() {
		assessment.AssessedOn = now.Truncate(24 * time.Hour)
	}
	assessment.UpdatedAt = now

	const query = `INSERT INTO assessments (id, course_id, title, type, score, max_score, weight, assessed_on, created_at, updated_at)
		VALUES (:id, :course_id, :title, :type, :score, :max_score, :weight, :assessed_on, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Update modifies an existing assessment.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assessments SET title = :title, type = :type, score = :score, max_score = :max_score, weight = :weight, assessed_on = :assessed_on, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	return nil
}

// Delete removes an assessment.
func (r *AssessmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}
