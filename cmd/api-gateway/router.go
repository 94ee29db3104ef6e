package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/progress-dashboard-api/internal/handler"
	"github.com/noah-isme/progress-dashboard-api/internal/middleware"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/config"
	"github.com/noah-isme/progress-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/progress-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/progress-dashboard-api/pkg/middleware/requestid"
)

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

type routerDeps struct {
	tokens      tokenValidator
	metrics     *service.MetricsService
	courses     *handler.CourseHandler
	assessments *handler.AssessmentHandler
	grades      *handler.GradeHandler
	fitness     *handler.FitnessHandler
	dashboard   *handler.DashboardHandler
	system      *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.system.Health)
	r.GET("/ready", deps.system.Ready)
	r.GET("/metrics", deps.system.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(deps.tokens))

	api.GET("/system/metrics", deps.system.Snapshot)
	api.GET("/dashboard", deps.dashboard.Student)

	courses := api.Group("/courses")
	courses.GET("", deps.courses.List)
	courses.POST("", deps.courses.Create)
	courses.GET("/:id", deps.courses.Get)
	courses.PUT("/:id", deps.courses.Update)
	courses.DELETE("/:id", deps.courses.Delete)

	courses.GET("/:id/assessments", deps.assessments.List)
	courses.POST("/:id/assessments", deps.assessments.Create)
	courses.PUT("/:id/assessments/:assessmentId", deps.assessments.Update)
	courses.DELETE("/:id/assessments/:assessmentId", deps.assessments.Delete)

	courses.GET("/:id/projection/defaults", deps.grades.Defaults)
	courses.POST("/:id/projection", deps.grades.Project)
	courses.POST("/:id/projection/required-score", deps.grades.RequiredScore)

	grades := api.Group("/grades")
	grades.GET("/summary", deps.grades.Summary)
	grades.POST("/impact", deps.grades.Impact)

	fitness := api.Group("/fitness")
	fitness.GET("/measurements", deps.fitness.List)
	fitness.POST("/measurements", deps.fitness.Create)
	fitness.DELETE("/measurements/:id", deps.fitness.Delete)
	fitness.GET("/summary", deps.fitness.Summary)
	fitness.GET("/standards", deps.fitness.Standards)

	return r
}
