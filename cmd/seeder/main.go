package main

import (
	"context"
	"os"

	"timeclock-sync/config"
	"timeclock-sync/internal/database"
	"timeclock-sync/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// separate script, so .env is loaded here as well
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("development").Error("load config", zap.Error(err))
		return 1
	}
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Warn(".env not found, using system environment variables")
	}
	if cfg.DBDriver == "memory" {
		log.Error("the seeder needs a SQL database, DB_DRIVER=memory seeds itself at startup")
		return 1
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Error("connect database", zap.Error(err))
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	log.Info("seeding database", zap.String("driver", cfg.DBDriver))
	if err := database.SeedAll(context.Background(), db, cfg, log); err != nil {
		log.Error("seed database", zap.Error(err))
		return 1
	}
	return 0
}
