package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/response"
)

type assessmentService interface {
	List(ctx context.Context, studentID, courseID string) ([]models.Assessment, error)
	Create(ctx context.Context, studentID, courseID string, req service.AssessmentRequest) (*models.Assessment, error)
	Update(ctx context.Context, studentID, courseID, id string, req service.AssessmentRequest) (*models.Assessment, error)
	Delete(ctx context.Context, studentID, courseID, id string) error
}

// AssessmentHandler handles graded work nested under a course.
type AssessmentHandler struct {
	service assessmentService
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(svc assessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// List godoc
// @Summary List assessments of a course
// @Tags Assessments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Record an assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Replace an assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param assessmentId path string true "Assessment ID"
// @Param payload body service.AssessmentRequest true "Assessment payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assessments/{assessmentId} [put]
func (h *AssessmentHandler) Update(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), claims.UserID, c.Param("id"), c.Param("assessmentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete an assessment
// @Tags Assessments
// @Param id path string true "Course ID"
// @Param assessmentId path string true "Assessment ID"
// @Success 204
// @Router /courses/{id}/assessments/{assessmentId} [delete]
func (h *AssessmentHandler) Delete(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id"), c.Param("assessmentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
