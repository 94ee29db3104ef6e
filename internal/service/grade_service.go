package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type courseReader interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type assessmentReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Assessment, error)
	ListByCourses(ctx context.Context, courseIDs []string) (map[string][]models.Assessment, error)
}

// ProjectionRequest carries the hypothetical future work for a forward projection. With
// use_defaults and no assignments the generated default set is used.
type ProjectionRequest struct {
	FutureAssignments []scoring.FutureAssignment `json:"future_assignments" validate:"omitempty,dive"`
	UseDefaults       bool                       `json:"use_defaults"`
}

// RequiredScoreRequest asks which score on one future assignment reaches a target average.
type RequiredScoreRequest struct {
	TargetPercentage  *float64                   `json:"target_percentage" validate:"required,gte=0,lte=100"`
	AssignmentID      string                     `json:"assignment_id" validate:"required"`
	FutureAssignments []scoring.FutureAssignment `json:"future_assignments" validate:"omitempty,dive"`
	UseDefaults       bool                       `json:"use_defaults"`
}

// CourseProjectionInput is the future work assumed for one course in a GPA impact request.
type CourseProjectionInput struct {
	CourseID          string                     `json:"course_id" validate:"required"`
	FutureAssignments []scoring.FutureAssignment `json:"future_assignments" validate:"omitempty,dive"`
	UseDefaults       bool                       `json:"use_defaults"`
}

// ImpactRequest lists per-course future work. Courses left out keep their current standing.
type ImpactRequest struct {
	Courses []CourseProjectionInput `json:"courses" validate:"required,min=1,dive"`
}

// GradeService exposes the scoring engine over a student's stored courses and assessments.
type GradeService struct {
	courses     courseReader
	assessments assessmentReader
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(courses courseReader, assessments assessmentReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{courses: courses, assessments: assessments, metrics: metrics, validator: validate, logger: logger}
}

// Summary returns every course's current standing with weighted and unweighted GPA.
func (s *GradeService) Summary(ctx context.Context, studentID, term string) (*dto.GradeSummaryResponse, error) {
	courses, byCourse, err := s.loadStudent(ctx, studentID, term)
	if err != nil {
		return nil, err
	}
	return buildGradeSummary(term, courses, byCourse), nil
}

// Defaults returns the generated future assignments for a course.
func (s *GradeService) Defaults(ctx context.Context, studentID, courseID string) ([]scoring.FutureAssignment, error) {
	_, current, err := s.loadCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	return scoring.DefaultFutureAssignments(current), nil
}

// Project predicts the course average after the supplied future assignments.
func (s *GradeService) Project(ctx context.Context, studentID, courseID string, req ProjectionRequest) (*scoring.CourseGradePrediction, error) {
	if err := s.validateFuture(req, req.FutureAssignments); err != nil {
		return nil, err
	}
	course, current, err := s.loadCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	future := resolveFuture(req.FutureAssignments, req.UseDefaults, current)
	if len(current) == 0 && len(future) == 0 {
		return nil, appErrors.ErrNoAssessments
	}

	prediction := presentPrediction(scoring.PredictGrade(*course, current, future))
	s.metrics.RecordProjection(ProjectionForward)
	return &prediction, nil
}

// RequiredScore solves for the score on one future assignment that reaches the target average.
func (s *GradeService) RequiredScore(ctx context.Context, studentID, courseID string, req RequiredScoreRequest) (*dto.RequiredScoreResponse, error) {
	if err := s.validateFuture(req, req.FutureAssignments); err != nil {
		return nil, err
	}
	course, current, err := s.loadCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	future := resolveFuture(req.FutureAssignments, req.UseDefaults, current)
	result, ok := scoring.SolveRequiredScore(*req.TargetPercentage, *course, current, future, req.AssignmentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownAssignment, fmt.Sprintf("future assignment %q not found or has no weight", req.AssignmentID))
	}

	s.metrics.RecordProjection(ProjectionInverse)
	if !result.Achievable {
		s.metrics.RecordInfeasibleTarget()
		s.logger.Debug("required score clamped",
			zap.String("course_id", courseID),
			zap.Float64("target", result.Target),
			zap.Float64("unclamped", result.Unclamped))
	}

	projection := presentPrediction(scoring.PredictGrade(*course, current, scoring.WithPredictedScore(future, req.AssignmentID, result.Score)))
	return &dto.RequiredScoreResponse{RequiredScore: result, Projection: projection}, nil
}

// Impact predicts the GPA change if the supplied future work happens.
func (s *GradeService) Impact(ctx context.Context, studentID string, req ImpactRequest) (*dto.GPAImpactResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid impact payload")
	}

	courses, byCourse, err := s.loadStudent(ctx, studentID, "")
	if err != nil {
		return nil, err
	}
	known := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		known[c.ID] = c
	}

	seen := make(map[string]struct{}, len(req.Courses))
	predictions := make([]scoring.CourseGradePrediction, 0, len(req.Courses))
	for _, input := range req.Courses {
		if _, dup := seen[input.CourseID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("course %s listed twice", input.CourseID))
		}
		seen[input.CourseID] = struct{}{}
		if err := uniqueAssignmentIDs(input.FutureAssignments); err != nil {
			return nil, err
		}

		course, ok := known[input.CourseID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		current := byCourse[course.ID]
		future := resolveFuture(input.FutureAssignments, input.UseDefaults, current)
		predictions = append(predictions, scoring.PredictGrade(course, current, future))
	}

	impact := scoring.CalculateGPAImpact(courses, byCourse, predictions)
	for i := range predictions {
		predictions[i] = presentPrediction(predictions[i])
	}
	s.metrics.RecordProjection(ProjectionImpact)
	return &dto.GPAImpactResponse{Impact: impact, Predictions: predictions}, nil
}

func (s *GradeService) validateFuture(req interface{}, future []scoring.FutureAssignment) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid projection payload")
	}
	return uniqueAssignmentIDs(future)
}

func (s *GradeService) loadCourse(ctx context.Context, studentID, courseID string) (*models.Course, []models.Assessment, error) {
	course, err := ownedCourse(ctx, s.courses, studentID, courseID)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	current, err := s.assessments.ListByCourse(ctx, courseID)
	s.metrics.ObserveDBQuery("assessments_by_course", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	return course, current, nil
}

func (s *GradeService) loadStudent(ctx context.Context, studentID, term string) ([]models.Course, map[string][]models.Assessment, error) {
	start := time.Now()
	courses, _, err := s.courses.List(ctx, models.CourseFilter{StudentID: studentID, Term: term})
	s.metrics.ObserveDBQuery("courses_by_student", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	start = time.Now()
	byCourse, err := s.assessments.ListByCourses(ctx, ids)
	s.metrics.ObserveDBQuery("assessments_by_courses", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	return courses, byCourse, nil
}

// presentPrediction drops the current letter of a course without assessments so it never
// reads as a 0% F.
func presentPrediction(p scoring.CourseGradePrediction) scoring.CourseGradePrediction {
	if !p.CurrentGraded {
		p.CurrentLetter = ""
	}
	return p
}

func resolveFuture(future []scoring.FutureAssignment, useDefaults bool, current []models.Assessment) []scoring.FutureAssignment {
	if len(future) == 0 && useDefaults {
		return scoring.DefaultFutureAssignments(current)
	}
	return future
}

func uniqueAssignmentIDs(future []scoring.FutureAssignment) error {
	seen := make(map[string]struct{}, len(future))
	for _, f := range future {
		if _, dup := seen[f.ID]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("future assignment id %q is not unique", f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

func buildGradeSummary(term string, courses []models.Course, byCourse map[string][]models.Assessment) *dto.GradeSummaryResponse {
	summary := &dto.GradeSummaryResponse{
		Term:         term,
		Courses:      make([]dto.CourseGrade, 0, len(courses)),
		TotalCourses: len(courses),
	}

	var all []models.Assessment
	for _, course := range courses {
		current := byCourse[course.ID]
		all = append(all, current...)

		grade := dto.CourseGrade{
			CourseID:    course.ID,
			Name:        course.Name,
			Code:        course.Code,
			Credits:     course.Credits,
			IsWeighted:  course.IsWeighted,
			Graded:      scoring.HasGrade(current),
			Assessments: len(current),
		}
		if grade.Graded {
			grade.Average = scoring.CourseAverage(current)
			grade.Letter = scoring.PercentageToLetterGrade(grade.Average)
			grade.Points = scoring.LetterGradeToPoints(grade.Letter, course.IsWeighted)
			summary.GradedCourses++
			summary.GradedCredits += course.Credits
		}
		summary.Courses = append(summary.Courses, grade)
	}

	summary.GPA = scoring.RoundGPA(scoring.CalculateGPA(courses, all))
	summary.UnweightedGPA = scoring.RoundGPA(scoring.CalculateUnweightedGPA(courses, all))
	return summary
}
