package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/pkg/jobs"
)

// JobDashboardInvalidate evicts a student's cached dashboard. The payload is the student ID.
const JobDashboardInvalidate = "dashboard.invalidate"

type jobEnqueuer interface {
	TryEnqueue(job jobs.Job) error
}

type studentCacheInvalidator interface {
	InvalidateStudent(ctx context.Context, studentID string) error
}

// InvalidationService moves dashboard cache eviction off the request path.
type InvalidationService struct {
	cache  studentCacheInvalidator
	queue  jobEnqueuer
	logger *zap.Logger
}

// NewInvalidationService constructs an InvalidationService. Attach a queue before use; without
// one, Notify invalidates synchronously.
func NewInvalidationService(cache studentCacheInvalidator, logger *zap.Logger) *InvalidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationService{cache: cache, logger: logger}
}

// Attach wires the queue that receives invalidation jobs.
func (s *InvalidationService) Attach(queue jobEnqueuer) {
	s.queue = queue
}

// Notify schedules eviction of the student's cached dashboard.
func (s *InvalidationService) Notify(studentID string) {
	if s == nil || studentID == "" {
		return
	}
	if s.queue == nil {
		if err := s.invalidate(context.Background(), studentID); err != nil {
			s.logger.Warn("dashboard invalidation failed", zap.String("student_id", studentID), zap.Error(err))
		}
		return
	}

	job := jobs.Job{ID: uuid.NewString(), Type: JobDashboardInvalidate, Payload: studentID}
	if err := s.queue.TryEnqueue(job); err != nil {
		s.logger.Warn("dashboard invalidation not queued", zap.String("student_id", studentID), zap.Error(err))
	}
}

// Handle is the queue handler for JobDashboardInvalidate jobs.
func (s *InvalidationService) Handle(ctx context.Context, job jobs.Job) error {
	if job.Type != JobDashboardInvalidate {
		return fmt.Errorf("unsupported job type %q", job.Type)
	}
	studentID, ok := job.Payload.(string)
	if !ok || studentID == "" {
		s.logger.Error("dropping invalidation job with bad payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.invalidate(ctx, studentID)
}

func (s *InvalidationService) invalidate(ctx context.Context, studentID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateStudent(ctx, studentID)
}
