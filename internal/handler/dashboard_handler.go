package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/dto"
	"github.com/noah-isme/progress-dashboard-api/internal/middleware"
	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
	"github.com/noah-isme/progress-dashboard-api/pkg/response"
)

type dashboardService interface {
	Student(ctx context.Context, studentID string, gender scoring.Gender) (*dto.StudentDashboardResponse, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Student godoc
// @Summary Academic and fitness snapshot for the current student
// @Tags Dashboard
// @Produce json
// @Param gender query string false "male or female; defaults to the token profile"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims, ok := currentStudent(c)
	if !ok {
		return
	}
	gender, err := service.ResolveGender(c.Query("gender"), claims.Gender)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	summary, cacheHit, err := h.service.Student(c.Request.Context(), claims.UserID, gender)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetCacheVariant(c, string(gender))
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
