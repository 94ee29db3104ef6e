package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type fitnessRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.FitnessMeasurement, error)
	FindByID(ctx context.Context, id string) (*models.FitnessMeasurement, error)
	Create(ctx context.Context, m *models.FitnessMeasurement) error
	Delete(ctx context.Context, id string) error
}

// MeasurementRequest records one physical test result.
type MeasurementRequest struct {
	ExerciseType string     `json:"exercise_type" validate:"required"`
	Value        float64    `json:"value" validate:"gte=0"`
	TargetValue  *float64   `json:"target_value" validate:"omitempty,gte=0"`
	Unit         string     `json:"unit" validate:"max=20"`
	RecordedAt   *time.Time `json:"recorded_at"`
}

// ResolveGender picks the standards table from an explicit value, falling back to the profile value.
func ResolveGender(explicit, fallback string) (scoring.Gender, error) {
	raw := explicit
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	gender, ok := scoring.ParseGender(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "gender must be male or female")
	}
	return gender, nil
}

// FitnessService manages measurements and scores them against the built-in standards.
type FitnessService struct {
	repo      fitnessRepository
	notifier  dashboardNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFitnessService constructs a FitnessService.
func NewFitnessService(repo fitnessRepository, notifier dashboardNotifier, validate *validator.Validate, logger *zap.Logger) *FitnessService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FitnessService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// List returns the student's measurements, newest first.
func (s *FitnessService) List(ctx context.Context, studentID string) ([]models.FitnessMeasurement, error) {
	measurements, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fitness measurements")
	}
	return measurements, nil
}

// Create records a measurement for a built-in exercise.
func (s *FitnessService) Create(ctx context.Context, studentID string, req MeasurementRequest) (*models.FitnessMeasurement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid measurement payload")
	}
	exercise, ok := scoring.ParseExerciseType(req.ExerciseType)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown exercise type %q", req.ExerciseType))
	}

	m := &models.FitnessMeasurement{
		StudentID:    studentID,
		ExerciseType: string(exercise),
		Value:        req.Value,
		TargetValue:  req.TargetValue,
		Unit:         strings.TrimSpace(req.Unit),
	}
	if m.Unit == "" {
		m.Unit = scoring.UnitFor(exercise)
	}
	if req.RecordedAt != nil {
		m.RecordedAt = req.RecordedAt.UTC()
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record measurement")
	}
	s.notify(studentID)
	return m, nil
}

// Delete removes one of the student's measurements.
func (s *FitnessService) Delete(ctx context.Context, studentID, id string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "measurement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load measurement")
	}
	if m.StudentID != studentID {
		return appErrors.Clone(appErrors.ErrNotFound, "measurement not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete measurement")
	}
	s.notify(studentID)
	return nil
}

// Summary scores the latest measurement of each exercise and the composite index.
func (s *FitnessService) Summary(ctx context.Context, studentID string, gender scoring.Gender) (*dto.FitnessSummary, error) {
	measurements, err := s.List(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary := BuildFitnessSummary(measurements, gender)
	return &summary, nil
}

// Standards returns the standards table for a gender in display order.
func (s *FitnessService) Standards(gender scoring.Gender) []dto.FitnessStandardRow {
	return StandardsTable(gender)
}

// BuildFitnessSummary scores measurements ordered newest first.
func BuildFitnessSummary(measurements []models.FitnessMeasurement, gender scoring.Gender) dto.FitnessSummary {
	return dto.FitnessSummary{
		Gender:         gender,
		CompositeScore: scoring.CompositeFitnessScore(measurements, gender),
		Exercises:      scoring.FitnessBreakdown(measurements, gender),
		Measurements:   len(measurements),
	}
}

// StandardsTable lists every built-in standard for gender.
func StandardsTable(gender scoring.Gender) []dto.FitnessStandardRow {
	exercises := scoring.Exercises()
	rows := make([]dto.FitnessStandardRow, 0, len(exercises))
	for _, exercise := range exercises {
		std, ok := scoring.StandardFor(exercise, gender)
		if !ok {
			continue
		}
		rows = append(rows, dto.FitnessStandardRow{Exercise: exercise, Unit: scoring.UnitFor(exercise), Standard: std})
	}
	return rows
}

func (s *FitnessService) notify(studentID string) {
	if s.notifier != nil {
		s.notifier.Notify(studentID)
	}
}
