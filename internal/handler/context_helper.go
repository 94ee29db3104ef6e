package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/progress-dashboard-api/internal/middleware"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
	"github.com/noah-isme/progress-dashboard-api/pkg/response"
)

// currentStudent returns the authenticated student or writes a 401.
func currentStudent(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

func invalidPayload(c *gin.Context, err error) {
	response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
}
