package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/handler"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/config"
	appErrors "github.com/noah-isme/progress-dashboard-api/pkg/errors"
)

type staticTokens struct{}

func (staticTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "valid" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.JWTClaims{UserID: "s1", Gender: "male"}, nil
}

func testRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: env, APIPrefix: "/api/v1"}
	metrics := service.NewMetricsService()
	return newRouter(cfg, zap.NewNop(), routerDeps{
		tokens:      staticTokens{},
		metrics:     metrics,
		courses:     handler.NewCourseHandler(nil),
		assessments: handler.NewAssessmentHandler(nil),
		grades:      handler.NewGradeHandler(nil),
		fitness:     handler.NewFitnessHandler(service.NewFitnessService(nil, nil, nil, nil)),
		dashboard:   handler.NewDashboardHandler(nil),
		system:      handler.NewMetricsHandler(metrics, nil),
	})
}

func TestRouterRegistersEndpoints(t *testing.T) {
	routes := map[string]bool{}
	for _, route := range testRouter(config.EnvDevelopment).Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"GET /docs/*any",
		"GET /api/v1/dashboard",
		"GET /api/v1/courses",
		"POST /api/v1/courses",
		"PUT /api/v1/courses/:id",
		"DELETE /api/v1/courses/:id/assessments/:assessmentId",
		"GET /api/v1/courses/:id/projection/defaults",
		"POST /api/v1/courses/:id/projection",
		"POST /api/v1/courses/:id/projection/required-score",
		"GET /api/v1/grades/summary",
		"POST /api/v1/grades/impact",
		"POST /api/v1/fitness/measurements",
		"GET /api/v1/fitness/summary",
		"GET /api/v1/fitness/standards",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	for _, route := range testRouter(config.EnvProduction).Routes() {
		assert.NotEqual(t, "/docs/*any", route.Path)
	}
}

func TestRouterRequiresToken(t *testing.T) {
	router := testRouter(config.EnvDevelopment)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fitness/standards", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fitness/standards", nil)
	req.Header.Set("Authorization", "Bearer valid")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
