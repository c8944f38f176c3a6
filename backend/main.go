package main

import (
	"log"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"leetstats/backend/config"
	"leetstats/backend/leetcode"
	"leetstats/backend/middleware"
	"leetstats/backend/routes"
	"leetstats/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		EnableColors: cfg.LogFormat == "console",
	})

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error initializing database")
	}

	client := leetcode.NewClient(leetcode.ClientConfig{
		Endpoint:   cfg.LeetCodeEndpoint,
		Timeout:    cfg.LeetCodeTimeout,
		RatePerSec: cfg.LeetCodeRatePerSec,
		Burst:      cfg.LeetCodeBurst,
		Logger:     &logger,
	})

	// Create Fiber app
	app := routes.NewApp()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:     db,
		Cfg:    cfg,
		Client: client,
		Logger: logger,
	})

	// Start server
	logger.Info().Str("port", cfg.ServerPort).Msg("Starting server")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
