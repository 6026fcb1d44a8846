package main

import (
	"net/http"
	"os"

	"github.com/gymbrah/GymBrah-backend/internal/api"
	"github.com/gymbrah/GymBrah-backend/internal/config"
	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/gamification"
	"github.com/gymbrah/GymBrah-backend/internal/handler"
	"github.com/gymbrah/GymBrah-backend/internal/jobs"
	"github.com/gymbrah/GymBrah-backend/internal/logger"
	"github.com/gymbrah/GymBrah-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	logger.Info("Starting GymBrah API (%s)", cfg.AppEnv)

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (cache leaderboard, non bloquant si absent)
	database.ConnectRedis(cfg)

	// Gamification engine
	handler.InitGamification(gamification.NewStore(gamification.NewPostgresRepository(db)))

	// Cloudinary (optionnel en dev local)
	if err := services.InitCloudinary(cfg); err != nil {
		logger.Warning("Cloudinary disabled: %v", err)
	}

	// Scheduler : rappels de streak
	scheduler := jobs.NewScheduler(cfg, services.NewMailer(cfg))
	if err := scheduler.Start(); err != nil {
		logger.Error("Could not start scheduler: %v", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Initialize routes (CORS inclus)
	router := api.SetupRouter(cfg)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
