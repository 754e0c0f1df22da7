package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-search/config"
	"doctor-search/internal/converter"
	deliveryHttp "doctor-search/internal/delivery/http"
	"doctor-search/internal/delivery/http/handler"
	"doctor-search/internal/delivery/http/middleware"
	"doctor-search/internal/domain/repository"
	"doctor-search/internal/infrastructure/cache"
	"doctor-search/internal/infrastructure/httpclient"
	repositoryImpl "doctor-search/internal/repository"
	"doctor-search/internal/usecase"
	"doctor-search/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	RedisClient   *redis.Client
	SearchUsecase usecase.DoctorSearchUsecase
	Server        *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize Redis, only used to cache the raw feed
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	app.Server, app.SearchUsecase = initializeServer(cfg, app.RedisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, redisClient *redis.Client) (*http.Server, usecase.DoctorSearchUsecase) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	client := httpclient.NewClient(cfg.Feed.Timeout)
	var feedRepo repository.DoctorFeedRepository = repositoryImpl.NewDoctorFeedRepository(client, cfg.Feed.URL, log)
	if redisClient != nil {
		feedRepo = repositoryImpl.NewCachedDoctorFeedRepository(feedRepo, redisClient, cfg.Feed.CacheTTL, log)
	}

	// Initialize usecases
	rater := converter.NewRatingSource(cfg.Rating.Mode, cfg.Rating.Seed)
	searchUsecase := usecase.NewDoctorSearchUsecase(log, feedRepo, rater)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(log, searchUsecase)
	filterHandler := handler.NewFilterHandler(log, searchUsecase, customValidator)

	// Initialize middleware
	requestMiddleware := middleware.NewRequestMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, filterHandler, requestMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, searchUsecase
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Warm the doctor list once; a failure is reported through /doctors/status
	go func() {
		if _, err := app.SearchUsecase.LoadDoctors(context.Background()); err != nil {
			logrus.Warnf("Failed to preload doctors: %+v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the Redis connection if one was opened
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
