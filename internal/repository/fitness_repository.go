package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

const fitnessColumns = "id, student_id, exercise_type, value, target_value, unit, recorded_at, created_at"

// FitnessRepository manages persistence for fitness measurements.
type FitnessRepository struct {
	db *sqlx.DB
}

// NewFitnessRepository constructs a FitnessRepository.
func NewFitnessRepository(db *sqlx.DB) *FitnessRepository {
	return &FitnessRepository{db: db}
}

// ListByStudent returns measurements newest first, so the first row per exercise is the latest result.
func (r *FitnessRepository) ListByStudent(ctx context.Context, studentID string) ([]models.FitnessMeasurement, error) {
	query := "SELECT " + fitnessColumns + " FROM fitness_measurements WHERE student_id = $1 ORDER BY recorded_at DESC, created_at DESC"
	var measurements []models.FitnessMeasurement
	if err := r.db.SelectContext(ctx, &measurements, query, studentID); err != nil {
		return nil, fmt.Errorf("list fitness measurements: %w", err)
	}
	return measurements, nil
}

// FindByID fetches a measurement by ID.
func (r *FitnessRepository) FindByID(ctx context.Context, id string) (*models.FitnessMeasurement, error) {
	query := "SELECT " + fitnessColumns + " FROM fitness_measurements WHERE id = $1"
	var m models.FitnessMeasurement
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a measurement.
func (r *FitnessRepository) Create(ctx context.Context, m *models.FitnessMeasurement) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if m.RecordedAt.IsZero() {
		m.RecordedAt = now
	}
	m.CreatedAt = now

	const query = `INSERT INTO fitness_measurements (id, student_id, exercise_type, value, target_value, unit, recorded_at, created_at)
		VALUES (:id, :student_id, :exercise_type, :value, :target_value, :unit, :recorded_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("create fitness measurement: %w", err)
	}
	return nil
}

// Delete removes a measurement.
func (r *FitnessRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fitness_measurements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete fitness measurement: %w", err)
	}
	return nil
}
