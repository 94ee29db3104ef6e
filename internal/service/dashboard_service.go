package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type gradeSummaryProvider interface {
	Summary(ctx context.Context, studentID, term string) (*dto.GradeSummaryResponse, error)
}

type measurementLister interface {
	List(ctx context.Context, studentID string) ([]models.FitnessMeasurement, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Grades  gradeSummaryProvider
	Fitness measurementLister
	Cache   *CacheService
	Logger  *zap.Logger
	Config  DashboardServiceConfig
}

// DashboardService composes the student dashboard from the grade and fitness views.
type DashboardService struct {
	grades  gradeSummaryProvider
	fitness measurementLister
	cache   *CacheService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		grades:  params.Grades,
		fitness: params.Fitness,
		cache:   params.Cache,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Student returns the dashboard for studentID and reports whether it came from cache.
func (s *DashboardService) Student(ctx context.Context, studentID string, gender scoring.Gender) (*dto.StudentDashboardResponse, bool, error) {
	if studentID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	key := DashboardCacheKey(studentID, string(gender))
	var cached dto.StudentDashboardResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed, recomposing", zap.String("key", key), zap.Error(err))
	} else if hit {
		return &cached, true, nil
	}

	summary, err := s.compose(ctx, studentID, gender)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, summary, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, studentID string, gender scoring.Gender) (*dto.StudentDashboardResponse, error) {
	var (
		academic     *dto.GradeSummaryResponse
		measurements []models.FitnessMeasurement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		academic, err = s.grades.Summary(gctx, studentID, "")
		return err
	})
	g.Go(func() error {
		var err error
		measurements, err = s.fitness.List(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fitness := BuildFitnessSummary(measurements, gender)
	return &dto.StudentDashboardResponse{
		StudentID:   studentID,
		Academic:    *academic,
		Fitness:     fitness,
		Highlights:  buildHighlights(academic.Courses, fitness.Exercises),
		GeneratedAt: s.now().UTC(),
	}, nil
}

func buildHighlights(courses []dto.CourseGrade, exercises []scoring.ExerciseScore) dto.DashboardHighlights {
	var h dto.DashboardHighlights
	for i := range courses {
		c := &courses[i]
		if !c.Graded {
			h.UngradedCourses++
			continue
		}
		if h.StrongestCourse == nil || c.Average > h.StrongestCourse.Average {
			h.StrongestCourse = c
		}
		if h.WeakestCourse == nil || c.Average < h.WeakestCourse.Average {
			h.WeakestCourse = c
		}
	}
	for i := range exercises {
		if h.WeakestExercise == nil || exercises[i].Score < h.WeakestExercise.Score {
			h.WeakestExercise = &exercises[i]
		}
	}
	return h
}
