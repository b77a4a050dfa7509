// File: /main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"xclub-api/cache"
	"xclub-api/config"
	"xclub-api/database"
	"xclub-api/jobs"
	"xclub-api/middleware"
	"xclub-api/realtime"
	"xclub-api/routes"
	"xclub-api/services"
	"xclub-api/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with demo data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Leaderboard cache. The service degrades to direct reads when Redis
	// is unreachable.
	lbCache, err := cache.NewLeaderboardCache(cfg.RedisAddress, cfg.RedisPassword, 5*time.Minute)
	if err != nil {
		log.Printf("Warning: Redis unavailable, leaderboard caching disabled: %v", err)
		lbCache = nil
	}

	// Services
	emailService := services.NewEmailService(cfg)
	leaderboards := services.NewLeaderboardService(db, lbCache)

	// Realtime hub for leaderboard and status broadcasts
	hub := realtime.NewHub()
	go hub.Run()

	// Object storage for logos, covers and avatars
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" && cfg.R2BucketName != "" {
		uploader, err = storage.NewR2Uploader(storage.R2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Printf("Warning: R2 storage unavailable, uploads disabled: %v", err)
			uploader = nil
		}
	} else {
		log.Println("R2 storage not configured, uploads disabled")
	}

	// Background jobs
	statusJob := jobs.NewChallengeStatusJob(db, hub, time.Minute)
	statusJob.Start()
	defer statusJob.Stop()

	expiryJob := jobs.NewInvitationExpiryJob(db, 10*time.Minute)
	expiryJob.Start()
	defer expiryJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(routes.SetupCORS())

	// Shared middleware stack
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit(120, 20))
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.PaginationDefaults())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, leaderboards, hub, uploader)

	// Start server
	log.Printf("Starting X-Club API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
