package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campushq/course-api/internal/handler"
	"github.com/campushq/course-api/internal/middleware"
	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	"github.com/campushq/course-api/internal/service"
	"github.com/campushq/course-api/pkg/cache"
	"github.com/campushq/course-api/pkg/config"
	"github.com/campushq/course-api/pkg/database"
	"github.com/campushq/course-api/pkg/logger"
	corsmiddleware "github.com/campushq/course-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/course-api/pkg/middleware/requestid"
	"github.com/campushq/course-api/pkg/signer"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := runMigrations(db, cfg.MigrationsDir, logr); err != nil {
		logr.Sugar().Fatalw("migration failed", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	tokenSigner := signer.New(cfg.Session.Secret)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Session.TTL, logr)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	authSvc := service.NewAuthService(userRepo, sessionRepo, tokenSigner, validate, logr, cfg.Session.TTL)
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, cacheRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, cacheRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(courseRepo, studentRepo, enrollmentRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session.CookieName)
	courseHandler := handler.NewCourseHandler(courseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/logout", authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.Session(sessionRepo, tokenSigner, cfg.Session.CookieName))

	authed.GET("/dashboard", dashboardHandler.Stats)
	authed.GET("/courses", courseHandler.List)
	authed.GET("/students", studentHandler.List)

	instructorOnly := authed.Group("")
	instructorOnly.Use(middleware.RequireRoles(models.RoleInstructor))
	instructorOnly.POST("/course/create", courseHandler.Create)

	adminOnly := authed.Group("")
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
	adminOnly.POST("/student/create", studentHandler.Create)
	adminOnly.POST("/enroll", enrollmentHandler.Enroll)
	adminOnly.GET("/enroll", enrollmentHandler.FormData)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func runMigrations(db *sqlx.DB, migrationsDir string, logr *zap.Logger) error {
	driver, err := pgmigrate.WithInstance(db.DB, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logr.Info("running migrations", zap.String("dir", migrationsDir))
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logr.Info("no migrations to run")
		return nil
	}
	return err
}
