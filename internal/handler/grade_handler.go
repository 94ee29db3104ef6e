package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/response"
)

type gradeService interface {
	Summary(ctx context.Context, studentID, term string) (*dto.GradeSummaryResponse, error)
	Defaults(ctx context.Context, studentID, courseID string) ([]scoring.FutureAssignment, error)
	Project(ctx context.Context, studentID, courseID string, req service.ProjectionRequest) (*scoring.CourseGradePrediction, error)
	RequiredScore(ctx context.Context, studentID, courseID string, req service.RequiredScoreRequest) (*dto.RequiredScoreResponse, error)
	Impact(ctx context.Context, studentID string, req service.ImpactRequest) (*dto.GPAImpactResponse, error)
}

// GradeHandler exposes current standing and what-if projections.
type GradeHandler struct {
	service gradeService
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(svc gradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// Summary godoc
// @Summary Current course grades and GPA
// @Tags Grades
// @Produce json
// @Param term query string false "Restrict to one term"
// @Success 200 {object} response.Envelope
// @Router /grades/summary [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), claims.UserID, strings.TrimSpace(c.Query("term")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Defaults godoc
// @Summary Generated future assignments for a course
// @Tags Grades
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/projection/defaults [get]
func (h *GradeHandler) Defaults(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	future, err := h.service.Defaults(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, future, nil)
}

// Project godoc
// @Summary Forward grade projection
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.ProjectionRequest true "Future assignments"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /courses/{id}/projection [post]
func (h *GradeHandler) Project(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	prediction, err := h.service.Project(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prediction, nil)
}

// RequiredScore godoc
// @Summary Score needed on one assignment to reach a target average
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.RequiredScoreRequest true "Target and future assignments"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/projection/required-score [post]
func (h *GradeHandler) RequiredScore(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.RequiredScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	result, err := h.service.RequiredScore(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"achievable": result.Achievable})
}

// Impact godoc
// @Summary GPA impact of projected course outcomes
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.ImpactRequest true "Per-course future assignments"
// @Success 200 {object} response.Envelope
// @Router /grades/impact [post]
func (h *GradeHandler) Impact(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	result, err := h.service.Impact(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
