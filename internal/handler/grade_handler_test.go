package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type fakeGradeSrv struct {
	lastTerm     string
	lastCourse   string
	projection   service.ProjectionRequest
	required     service.RequiredScoreRequest
	impact       service.ImpactRequest
	requiredResp *dto.RequiredScoreResponse
	err          error
}

func (f *fakeGradeSrv) Summary(_ context.Context, _ string, term string) (*dto.GradeSummaryResponse, error) {
	f.lastTerm = term
	return &dto.GradeSummaryResponse{Term: term, GPA: 3.5}, f.err
}

func (f *fakeGradeSrv) Defaults(_ context.Context, _ string, courseID string) ([]scoring.FutureAssignment, error) {
	f.lastCourse = courseID
	return []scoring.FutureAssignment{{ID: "future-final-exam", Weight: 30, MaxScore: 100}}, f.err
}

func (f *fakeGradeSrv) Project(_ context.Context, _ string, courseID string, req service.ProjectionRequest) (*scoring.CourseGradePrediction, error) {
	f.lastCourse, f.projection = courseID, req
	if f.err != nil {
		return nil, f.err
	}
	return &scoring.CourseGradePrediction{CourseID: courseID, PredictedAverage: 91}, nil
}

func (f *fakeGradeSrv) RequiredScore(_ context.Context, _ string, courseID string, req service.RequiredScoreRequest) (*dto.RequiredScoreResponse, error) {
	f.lastCourse, f.required = courseID, req
	if f.err != nil {
		return nil, f.err
	}
	return f.requiredResp, nil
}

func (f *fakeGradeSrv) Impact(_ context.Context, _ string, req service.ImpactRequest) (*dto.GPAImpactResponse, error) {
	f.impact = req
	return &dto.GPAImpactResponse{Impact: scoring.GPAImpact{CurrentGPA: 3, PredictedGPA: 3.4, Difference: 0.4}}, f.err
}

func gradeRouterEngine(srv *fakeGradeSrv) *gin.Engine {
	handler := NewGradeHandler(srv)
	router := studentRouter(student())
	router.GET("/grades/summary", handler.Summary)
	router.POST("/grades/impact", handler.Impact)
	router.GET("/courses/:id/projection/defaults", handler.Defaults)
	router.POST("/courses/:id/projection", handler.Project)
	router.POST("/courses/:id/projection/required-score", handler.RequiredScore)
	return router
}

func TestGradeHandlerSummaryPassesTerm(t *testing.T) {
	srv := &fakeGradeSrv{}
	router := studentRouter(student())
	router.GET("/grades/summary", NewGradeHandler(srv).Summary)

	rec, envelope := perform(t, router, http.MethodGet, "/grades/summary?term=%20fall%20", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fall", srv.lastTerm)
	var summary dto.GradeSummaryResponse
	decodeData(t, envelope, &summary)
	assert.Equal(t, 3.5, summary.GPA)
}

func TestGradeHandlerProjectionBindsFutureAssignments(t *testing.T) {
	srv := &fakeGradeSrv{}
	handler := NewGradeHandler(srv)
	router := studentRouter(student())
	router.POST("/courses/:id/projection", handler.Project)
	router.GET("/courses/:id/projection/defaults", handler.Defaults)

	rec, envelope := perform(t, router, http.MethodPost, "/courses/chem/projection", map[string]interface{}{
		"future_assignments": []map[string]interface{}{
			{"id": "final", "weight": 30, "predicted_score": 95, "max_score": 100},
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chem", srv.lastCourse)
	require.Len(t, srv.projection.FutureAssignments, 1)
	assert.Equal(t, 95.0, srv.projection.FutureAssignments[0].PredictedScore)

	var prediction scoring.CourseGradePrediction
	decodeData(t, envelope, &prediction)
	assert.Equal(t, 91.0, prediction.PredictedAverage)

	rec, _ = perform(t, router, http.MethodGet, "/courses/bio/projection/defaults", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bio", srv.lastCourse)
}

func TestGradeHandlerProjectionWithoutData(t *testing.T) {
	srv := &fakeGradeSrv{err: appErrors.ErrNoAssessments}
	rec, envelope := perform(t, gradeRouterEngine(srv), http.MethodPost, "/courses/art/projection", map[string]interface{}{})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, appErrors.ErrNoAssessments.Code, envelope.Error.Code)
}

func TestGradeHandlerRequiredScoreReportsAchievability(t *testing.T) {
	srv := &fakeGradeSrv{requiredResp: &dto.RequiredScoreResponse{
		RequiredScore: scoring.RequiredScore{AssignmentID: "final", Score: 100, Unclamped: 134, MaxScore: 100},
	}}
	rec, envelope := perform(t, gradeRouterEngine(srv), http.MethodPost, "/courses/chem/projection/required-score", map[string]interface{}{
		"target_percentage": 99,
		"assignment_id":     "final",
		"use_defaults":      true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.required.TargetPercentage)
	assert.Equal(t, 99.0, *srv.required.TargetPercentage)
	assert.True(t, srv.required.UseDefaults)
	assert.Equal(t, false, envelope.Meta["achievable"])

	var result dto.RequiredScoreResponse
	decodeData(t, envelope, &result)
	assert.Equal(t, 134.0, result.Unclamped)
}

func TestGradeHandlerImpact(t *testing.T) {
	srv := &fakeGradeSrv{}
	rec, envelope := perform(t, gradeRouterEngine(srv), http.MethodPost, "/grades/impact", map[string]interface{}{
		"courses": []map[string]interface{}{{"course_id": "bio", "use_defaults": true}},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, srv.impact.Courses, 1)
	assert.Equal(t, "bio", srv.impact.Courses[0].CourseID)

	var result dto.GPAImpactResponse
	decodeData(t, envelope, &result)
	assert.InDelta(t, 0.4, result.Impact.Difference, 1e-9)

	rec, _ = perform(t, gradeRouterEngine(srv), http.MethodPost, "/grades/impact", `{"courses": 3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
