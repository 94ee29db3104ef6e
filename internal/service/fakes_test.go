package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type memCourseRepo struct {
	courses map[string]*models.Course
	listErr error
	deleted []string
}

func newMemCourseRepo(courses ...models.Course) *memCourseRepo {
	repo := &memCourseRepo{courses: map[string]*models.Course{}}
	for i := range courses {
		c := courses[i]
		repo.courses[c.ID] = &c
	}
	return repo
}

func (r *memCourseRepo) List(_ context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []models.Course
	for _, c := range r.courses {
		if c.StudentID != filter.StudentID {
			continue
		}
		if filter.Term != "" && c.Term != filter.Term {
			continue
		}
		out = append(out, *c)
	}
	sortCourses(out)
	return out, len(out), nil
}

func (r *memCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = "course-" + course.Name
	}
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *memCourseRepo) Update(_ context.Context, course *models.Course) error {
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *memCourseRepo) Delete(_ context.Context, id string) error {
	delete(r.courses, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func sortCourses(courses []models.Course) {
	for i := 1; i < len(courses); i++ {
		for j := i; j > 0 && courses[j].ID < courses[j-1].ID; j-- {
			courses[j], courses[j-1] = courses[j-1], courses[j]
		}
	}
}

type memAssessmentRepo struct {
	byID    map[string]models.Assessment
	order   []string
	loadErr error
}

func newMemAssessmentRepo(assessments ...models.Assessment) *memAssessmentRepo {
	repo := &memAssessmentRepo{byID: map[string]models.Assessment{}}
	for _, a := range assessments {
		repo.byID[a.ID] = a
		repo.order = append(repo.order, a.ID)
	}
	return repo
}

func (r *memAssessmentRepo) ListByCourse(_ context.Context, courseID string) ([]models.Assessment, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	var out []models.Assessment
	for _, id := range r.order {
		if a, ok := r.byID[id]; ok && a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAssessmentRepo) ListByCourses(ctx context.Context, courseIDs []string) (map[string][]models.Assessment, error) {
	grouped := map[string][]models.Assessment{}
	for _, id := range courseIDs {
		list, err := r.ListByCourse(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			grouped[id] = list
		}
	}
	return grouped, nil
}

func (r *memAssessmentRepo) FindByID(_ context.Context, id string) (*models.Assessment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r *memAssessmentRepo) Create(_ context.Context, a *models.Assessment) error {
	if a.ID == "" {
		a.ID = "assessment-" + a.Title
	}
	r.byID[a.ID] = *a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *memAssessmentRepo) Update(_ context.Context, a *models.Assessment) error {
	r.byID[a.ID] = *a
	return nil
}

func (r *memAssessmentRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type memFitnessRepo struct {
	measurements []models.FitnessMeasurement
	listErr      error
}

func (r *memFitnessRepo) ListByStudent(_ context.Context, studentID string) ([]models.FitnessMeasurement, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.FitnessMeasurement
	for _, m := range r.measurements {
		if m.StudentID == studentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memFitnessRepo) FindByID(_ context.Context, id string) (*models.FitnessMeasurement, error) {
	for _, m := range r.measurements {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memFitnessRepo) Create(_ context.Context, m *models.FitnessMeasurement) error {
	if m.ID == "" {
		m.ID = "m-" + m.ExerciseType
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now().UTC()
	}
	r.measurements = append([]models.FitnessMeasurement{*m}, r.measurements...)
	return nil
}

func (r *memFitnessRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.measurements {
		if m.ID == id {
			r.measurements = append(r.measurements[:i], r.measurements[i+1:]...)
			return nil
		}
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	students []string
}

func (n *recordingNotifier) Notify(studentID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.students = append(n.students, studentID)
}

func (n *recordingNotifier) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.students...)
}

type memCacheRepo struct {
	mu      sync.Mutex
	entries map[string]interface{}
	getErr  error
	deleted []string
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: map[string]interface{}{}}
}

func (r *memCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return r.getErr
	}
	value, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return roundTripJSON(value, dest)
}

func (r *memCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *memCacheRepo) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, pattern)
	removed := 0
	for key := range r.entries {
		if globMatch(pattern, key) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed, nil
}
