package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobsdoor_backend/internal/config"
	"jobsdoor_backend/internal/controller"
	"jobsdoor_backend/internal/repository"
	"jobsdoor_backend/internal/service"
	"jobsdoor_backend/pkg/database"
	"jobsdoor_backend/pkg/logger"
	"jobsdoor_backend/pkg/monitoring"
	"jobsdoor_backend/pkg/security"
	"jobsdoor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user           *repository.UserRepository
	lead           *repository.LeadRepository
	consultancy    *repository.ConsultancyRepository
	job            *repository.JobRepository
	application    *repository.ApplicationRepository
	assessment     repository.AssessmentRepository
	userAssessment repository.UserAssessmentRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	job         *service.JobService
	application *service.ApplicationService
	assessment  *service.AssessmentService
	storage     *service.StorageService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	job         *controller.JobController
	application *controller.ApplicationController
	assessment  *controller.AssessmentController
	dashboard   *controller.DashboardController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		lead:           repository.NewLeadRepository(db),
		consultancy:    repository.NewConsultancyRepository(db),
		job:            repository.NewJobRepository(db),
		application:    repository.NewApplicationRepository(db),
		assessment:     repository.NewAssessmentRepository(db),
		userAssessment: repository.NewUserAssessmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, repos.lead, cfg)
	s.user = service.NewUserService(repos.user, repos.consultancy)
	s.job = service.NewJobService(repos.job)
	s.application = service.NewApplicationService(repos.application, s.job)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.userAssessment)
	s.dashboard = service.NewDashboardService(repos.user, repos.job, repos.application, repos.assessment)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user, s.storage, repos.lead),
		job:         controller.NewJobController(s.job),
		application: controller.NewApplicationController(s.application, s.user, s.job),
		assessment:  controller.NewAssessmentController(s.assessment),
		dashboard:   controller.NewDashboardController(s.dashboard),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.Redis, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only backs rate limiting; the limiter degrades to its
		// in-process fallback without it.
		logger.Log.Warn("Redis unavailable, rate limiting falls back to per-instance", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("jobsdoor-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
