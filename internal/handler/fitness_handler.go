package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/response"
)

type fitnessService interface {
	List(ctx context.Context, studentID string) ([]models.FitnessMeasurement, error)
	Create(ctx context.Context, studentID string, req service.MeasurementRequest) (*models.FitnessMeasurement, error)
	Delete(ctx context.Context, studentID, id string) error
	Summary(ctx context.Context, studentID string, gender scoring.Gender) (*dto.FitnessSummary, error)
	Standards(gender scoring.Gender) []dto.FitnessStandardRow
}

// FitnessHandler handles fitness measurements and scoring.
type FitnessHandler struct {
	service fitnessService
}

// NewFitnessHandler constructs a fitness handler.
func NewFitnessHandler(svc fitnessService) *FitnessHandler {
	return &FitnessHandler{service: svc}
}

// List godoc
// @Summary List fitness measurements, newest first
// @Tags Fitness
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fitness/measurements [get]
func (h *FitnessHandler) List(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Record a fitness measurement
// @Tags Fitness
// @Accept json
// @Produce json
// @Param payload body service.MeasurementRequest true "Measurement payload"
// @Success 201 {object} response.Envelope
// @Router /fitness/measurements [post]
func (h *FitnessHandler) Create(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	var req service.MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Delete a fitness measurement
// @Tags Fitness
// @Param id path string true "Measurement ID"
// @Success 204
// @Router /fitness/measurements/{id} [delete]
func (h *FitnessHandler) Delete(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Per-exercise scores and composite fitness index
// @Tags Fitness
// @Produce json
// @Param gender query string false "male or female; defaults to the token profile"
// @Success 200 {object} response.Envelope
// @Router /fitness/summary [get]
func (h *FitnessHandler) Summary(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	gender, err := service.ResolveGender(c.Query("gender"), claims.Gender)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), claims.UserID, gender)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Standards godoc
// @Summary Built-in fitness standards
// @Tags Fitness
// @Produce json
// @Param gender query string false "male or female; defaults to the token profile"
// @Success 200 {object} response.Envelope
// @Router /fitness/standards [get]
func (h *FitnessHandler) Standards(c *gin.Context) {
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	gender, err := service.ResolveGender(c.Query("gender"), claims.Gender)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Standards(gender), nil)
}
