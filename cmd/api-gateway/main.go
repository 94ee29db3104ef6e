package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/progress-dashboard-api/api/swagger"
	"github.com/noah-isme/progress-dashboard-api/internal/handler"
	"github.com/noah-isme/progress-dashboard-api/internal/repository"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
	"github.com/noah-isme/progress-dashboard-api/pkg/cache"
	"github.com/noah-isme/progress-dashboard-api/pkg/config"
	"github.com/noah-isme/progress-dashboard-api/pkg/database"
	"github.com/noah-isme/progress-dashboard-api/pkg/jobs"
	"github.com/noah-isme/progress-dashboard-api/pkg/logger"
)

// @title Progress Dashboard API
// @version 1.0.0
// @description Grade projection and fitness scoring for the student progress dashboard
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Migrations.AutoMigrate {
		result, err := database.Migrate(db.DB, database.LatestVersion, logr)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logr.Info("schema ready", zap.Uint("version", result.To), zap.Bool("changed", result.Changed))
	}

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	invalidation := service.NewInvalidationService(cacheSvc, logr)
	queue := jobs.NewQueue("dashboard-invalidation", invalidation.Handle, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	invalidation.Attach(queue)
	queue.Start(ctx)
	defer queue.Stop()

	courseRepo := repository.NewCourseRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	fitnessRepo := repository.NewFitnessRepository(db)

	courseSvc := service.NewCourseService(courseRepo, invalidation, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, courseRepo, invalidation, validate, logr)
	gradeSvc := service.NewGradeService(courseRepo, assessmentRepo, metrics, validate, logr)
	fitnessSvc := service.NewFitnessService(fitnessRepo, invalidation, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Grades:  gradeSvc,
		Fitness: fitnessSvc,
		Cache:   cacheSvc,
		Logger:  logr,
		Config:  service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = cacheRepo.Ping
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, logr, routerDeps{
		tokens:      service.NewTokenService(cfg.JWT.Secret),
		metrics:     metrics,
		courses:     handler.NewCourseHandler(courseSvc),
		assessments: handler.NewAssessmentHandler(assessmentSvc),
		grades:      handler.NewGradeHandler(gradeSvc),
		fitness:     handler.NewFitnessHandler(fitnessSvc),
		dashboard:   handler.NewDashboardHandler(dashboardSvc),
		system:      handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
