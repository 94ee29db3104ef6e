package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type dashboardNotifier interface {
	Notify(studentID string)
}

// CourseRequest is the payload for creating or replacing a course.
type CourseRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Code       string  `json:"code" validate:"max=50"`
	Term       string  `json:"term" validate:"max=50"`
	Credits    float64 `json:"credits" validate:"gt=0,lte=20"`
	IsWeighted bool    `json:"is_weighted"`
}

// CourseService manages a student's courses.
type CourseService struct {
	repo      courseRepository
	notifier  dashboardNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, notifier dashboardNotifier, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// List returns the student's courses plus pagination data.
func (s *CourseService) List(ctx context.Context, studentID string, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	filter.StudentID = studentID
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns one of the student's courses.
func (s *CourseService) Get(ctx context.Context, studentID, id string) (*models.Course, error) {
	return ownedCourse(ctx, s.repo, studentID, id)
}

// Create adds a course for the student.
func (s *CourseService) Create(ctx context.Context, studentID string, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{StudentID: studentID}
	applyCourseRequest(course, req)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.logger.Info("course created", zap.String("student_id", studentID), zap.String("course_id", course.ID))
	s.notify(studentID)
	return course, nil
}

// Update replaces the editable fields of a course.
func (s *CourseService) Update(ctx context.Context, studentID, id string, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := ownedCourse(ctx, s.repo, studentID, id)
	if err != nil {
		return nil, err
	}
	applyCourseRequest(course, req)
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.notify(studentID)
	return course, nil
}

// Delete removes a course together with its assessments.
func (s *CourseService) Delete(ctx context.Context, studentID, id string) error {
	if _, err := ownedCourse(ctx, s.repo, studentID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	s.logger.Info("course deleted", zap.String("student_id", studentID), zap.String("course_id", id))
	s.notify(studentID)
	return nil
}

func (s *CourseService) notify(studentID string) {
	if s.notifier != nil {
		s.notifier.Notify(studentID)
	}
}

func applyCourseRequest(course *models.Course, req CourseRequest) {
	course.Name = strings.TrimSpace(req.Name)
	course.Code = strings.TrimSpace(req.Code)
	course.Term = strings.TrimSpace(req.Term)
	course.Credits = req.Credits
	course.IsWeighted = req.IsWeighted
}

// ownedCourse loads a course and hides courses owned by other students behind ErrNotFound.
func ownedCourse(ctx context.Context, repo courseFinder, studentID, id string) (*models.Course, error) {
	course, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if course.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}
