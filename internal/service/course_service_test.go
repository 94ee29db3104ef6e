package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

func TestCourseServiceCreateNotifies(t *testing.T) {
	repo := newMemCourseRepo()
	notifier := &recordingNotifier{}
	svc := NewCourseService(repo, notifier, nil, nil)

	course, err := svc.Create(context.Background(), "s1", CourseRequest{Name: "  Physics ", Code: "PHY1", Credits: 4, IsWeighted: true})
	require.NoError(t, err)
	assert.Equal(t, "Physics", course.Name)
	assert.Equal(t, "s1", course.StudentID)
	assert.True(t, course.IsWeighted)
	assert.Equal(t, []string{"s1"}, notifier.calls())
}

func TestCourseServiceCreateValidates(t *testing.T) {
	svc := NewCourseService(newMemCourseRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), "s1", CourseRequest{Name: "", Credits: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	for _, credits := range []float64{-1, 0, 20.5} {
		_, err = svc.Create(context.Background(), "s1", CourseRequest{Name: "Art", Credits: credits})
		require.Error(t, err, "credits %v", credits)
		assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	}
}

func TestCourseServiceHidesOtherStudentsCourses(t *testing.T) {
	repo := newMemCourseRepo(models.Course{ID: "c1", StudentID: "other", Name: "Latin"})
	svc := NewCourseService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	err = svc.Delete(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.Empty(t, repo.deleted)
}

func TestCourseServiceUpdateAndDelete(t *testing.T) {
	repo := newMemCourseRepo(models.Course{ID: "c1", StudentID: "s1", Name: "Latin", Credits: 1})
	notifier := &recordingNotifier{}
	svc := NewCourseService(repo, notifier, nil, nil)

	updated, err := svc.Update(context.Background(), "s1", "c1", CourseRequest{Name: "Latin II", Credits: 2})
	require.NoError(t, err)
	assert.Equal(t, "Latin II", updated.Name)
	assert.Equal(t, 2.0, repo.courses["c1"].Credits)

	require.NoError(t, svc.Delete(context.Background(), "s1", "c1"))
	assert.Equal(t, []string{"c1"}, repo.deleted)
	assert.Equal(t, []string{"s1", "s1"}, notifier.calls())
}

func TestCourseServiceListDefaultsPagination(t *testing.T) {
	repo := newMemCourseRepo(
		models.Course{ID: "a", StudentID: "s1"},
		models.Course{ID: "b", StudentID: "s1"},
		models.Course{ID: "c", StudentID: "s2"},
	)
	svc := NewCourseService(repo, nil, nil, nil)

	courses, page, err := svc.List(context.Background(), "s1", models.CourseFilter{StudentID: "spoofed"})
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 2, page.TotalCount)
}
