package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type assessmentRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Assessment, error)
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}

// AssessmentRequest is the payload for recording or replacing graded work. Scores above
// max_score are accepted as extra credit.
type AssessmentRequest struct {
	Title      string                `json:"title" validate:"required,max=200"`
	Type       models.AssessmentType `json:"type" validate:"omitempty,oneof=homework quiz test exam project lab other"`
	Score      float64               `json:"score" validate:"gte=0"`
	MaxScore   float64               `json:"max_score" validate:"gt=0"`
	Weight     float64               `json:"weight" validate:"gte=0"`
	AssessedOn *time.Time            `json:"assessed_on"`
}

// AssessmentService manages graded work inside a student's courses.
type AssessmentService struct {
	repo      assessmentRepository
	courses   courseFinder
	notifier  dashboardNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(repo assessmentRepository, courses courseFinder, notifier dashboardNotifier, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, courses: courses, notifier: notifier, validator: validate, logger: logger}
}

// List returns the assessments recorded for a course.
func (s *AssessmentService) List(ctx context.Context, studentID, courseID string) ([]models.Assessment, error) {
	if _, err := ownedCourse(ctx, s.courses, studentID, courseID); err != nil {
		return nil, err
	}
	assessments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	return assessments, nil
}

// Create records a new assessment.
func (s *AssessmentService) Create(ctx context.Context, studentID, courseID string, req AssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	if _, err := ownedCourse(ctx, s.courses, studentID, courseID); err != nil {
		return nil, err
	}

	assessment := &models.Assessment{CourseID: courseID}
	applyAssessmentRequest(assessment, req)
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}

	s.notify(studentID)
	return assessment, nil
}

// Update replaces an assessment's fields.
func (s *AssessmentService) Update(ctx context.Context, studentID, courseID, id string, req AssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	assessment, err := s.owned(ctx, studentID, courseID, id)
	if err != nil {
		return nil, err
	}

	applyAssessmentRequest(assessment, req)
	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assessment")
	}

	s.notify(studentID)
	return assessment, nil
}

// Delete removes an assessment.
func (s *AssessmentService) Delete(ctx context.Context, studentID, courseID, id string) error {
	if _, err := s.owned(ctx, studentID, courseID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assessment")
	}

	s.notify(studentID)
	return nil
}

func (s *AssessmentService) owned(ctx context.Context, studentID, courseID, id string) (*models.Assessment, error) {
	if _, err := ownedCourse(ctx, s.courses, studentID, courseID); err != nil {
		return nil, err
	}
	assessment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessment")
	}
	if assessment.CourseID != courseID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
	}
	return assessment, nil
}

func (s *AssessmentService) notify(studentID string) {
	if s.notifier != nil {
		s.notifier.Notify(studentID)
	}
}

func applyAssessmentRequest(a *models.Assessment, req AssessmentRequest) {
	a.Title = strings.TrimSpace(req.Title)
	a.Type = req.Type
	if a.Type == "" {
		a.Type = models.AssessmentTypeOther
	}
	a.Score = req.Score
	a.MaxScore = req.MaxScore
	a.Weight = req.Weight
	if req.AssessedOn != nil {
		a.AssessedOn = req.AssessedOn.UTC()
	}
}
