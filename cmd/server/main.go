package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"

	config "github.com/gitfolio/gitfolio/configs"
	"github.com/gitfolio/gitfolio/internal/application/services"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/gitfolio/gitfolio/internal/infrastructure/ai"
	"github.com/gitfolio/gitfolio/internal/infrastructure/db"
	"github.com/gitfolio/gitfolio/internal/infrastructure/github"
	"github.com/gitfolio/gitfolio/internal/infrastructure/health"
	"github.com/gitfolio/gitfolio/internal/infrastructure/httpserver"
	"github.com/gitfolio/gitfolio/internal/infrastructure/redis"
	"github.com/gitfolio/gitfolio/internal/infrastructure/repositories"
	"github.com/gitfolio/gitfolio/internal/infrastructure/screenshot"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting gitfolio API server...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Initialize the optional Redis front tier
	var frontCache ports.FrontCache
	healthCheckers := []ports.HealthChecker{health.NewDBHealthChecker(database)}
	if cfg.Redis.Enabled {
		var redisClient goredis.UniversalClient
		var err error
		if len(cfg.Redis.ClusterAddrs) > 0 {
			redisClient, err = redis.NewRedisClusterClient(&cfg.Redis)
		} else {
			redisClient, err = redis.NewRedisClient(&cfg.Redis)
		}
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to Redis, continuing without front cache")
		} else {
			defer redisClient.Close()
			frontCache = redis.NewRedisCache(redisClient, "gitfolio")
			healthCheckers = append(healthCheckers, health.NewRedisHealthChecker(redisClient))
			logger.Info("Connected to Redis successfully")
		}
	}

	// Wire the cache over the durable store plus the optional front tier
	cacheRepo := repositories.NewCacheRepository(database, logger)
	cacheService := services.NewCacheService(cacheRepo, frontCache, cfg, logger)

	// GitHub gateway
	githubClient := github.NewClient(&cfg.GitHub, logger)

	// Optional completion client; without an API key generation degrades to
	// deterministic fallbacks
	var completionClient ports.CompletionClient
	if cfg.OpenAI.APIKey != "" {
		client, err := ai.NewOpenAIClient(&cfg.OpenAI)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize completion client, using fallbacks")
		} else {
			completionClient = client
		}
	}
	generator := services.NewGeneratorService(completionClient, logger)

	// Screenshot renderer (thum.io fallback when no service is configured)
	renderer := screenshot.NewRenderer(&cfg.Screenshot, logger)

	// Application services
	profileService := services.NewProfileService(githubClient, generator, cacheService, cfg, logger)
	projectsService := services.NewProjectsService(githubClient, cacheService, cfg, logger)
	contributionsService := services.NewContributionsService(githubClient, cacheService, cfg)
	pullRequestService := services.NewPullRequestService(githubClient, cacheService, cfg)
	screenshotService := services.NewScreenshotService(renderer, cacheService, cfg, logger)

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		ProfileService:       profileService,
		ProjectsService:      projectsService,
		ContributionsService: contributionsService,
		PullRequestService:   pullRequestService,
		ScreenshotService:    screenshotService,
		IdentityResolver:     githubClient,
		HealthCheckers:       healthCheckers,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
