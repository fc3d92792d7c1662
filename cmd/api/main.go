package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/config"
	"github.com/jobdesk/backend/internal/database"
	"github.com/jobdesk/backend/internal/handlers"
	"github.com/jobdesk/backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("connecting database", zap.Error(err))
	}
	defer database.Close(db)

	resumes, err := storage.NewResumeStore(cfg.UploadDir, cfg.MaxUploadBytes, logger)
	if err != nil {
		logger.Fatal("preparing upload dir", zap.Error(err))
	}

	r := handlers.NewRouter(cfg, db, resumes, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
