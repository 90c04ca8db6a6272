package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/handler"
	internalmiddleware "github.com/noah-isme/faculdade-api/internal/middleware"
	"github.com/noah-isme/faculdade-api/internal/repository"
	"github.com/noah-isme/faculdade-api/internal/service"
	"github.com/noah-isme/faculdade-api/pkg/cache"
	"github.com/noah-isme/faculdade-api/pkg/config"
	"github.com/noah-isme/faculdade-api/pkg/database"
	"github.com/noah-isme/faculdade-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/faculdade-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/faculdade-api/pkg/middleware/requestid"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, database.MigrateUp, logr); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cmd.Context(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, read-model cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, db, cacheRepo, redisClient != nil, logr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "version", version, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logr.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newRouter(cfg *config.Config, db *sqlx.DB, cacheRepo *repository.CacheRepository, cacheEnabled bool, logr *zap.Logger) *gin.Engine {
	validate := service.NewValidator()
	metrics := service.NewMetricsService(db.DB)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheEnabled)

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	taughtRepo := repository.NewTaughtSubjectRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	handlers := handler.Handlers{
		Student:    handler.NewStudentHandler(service.NewStudentService(studentRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		Course:     handler.NewCourseHandler(service.NewCourseService(courseRepo, curriculumRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		Subject:    handler.NewSubjectHandler(service.NewSubjectService(subjectRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		Teacher:    handler.NewTeacherHandler(service.NewTeacherService(teacherRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		Class:      handler.NewClassHandler(service.NewClassService(classRepo, taughtRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		Evaluation: handler.NewEvaluationHandler(service.NewEvaluationService(evaluationRepo, taughtRepo, cacheSvc, metrics, validate, logr), cfg.Pagination),
		System:     handler.NewSystemHandler(metrics, db),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers)
	return r
}
