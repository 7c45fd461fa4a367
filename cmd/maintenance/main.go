package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/database"
	"timeclock-sync/internal/logger"
	"timeclock-sync/internal/maintenance"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// One-shot purge of expired sync log entries, for cron-style deployments.
func main() {
	os.Exit(run())
}

func run() int {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("open store", zap.Error(err))
		return 1
	}
	defer closeStore()

	var archiver maintenance.Archiver
	if cfg.ArchiveBucket != "" {
		client, err := maintenance.NewS3Client(ctx, cfg)
		if err != nil {
			log.Error("s3 client", zap.Error(err))
			return 1
		}
		archiver = maintenance.NewS3Archiver(client, cfg.ArchiveBucket)
	}

	report, err := maintenance.NewCleaner(store, archiver, cfg.SyncLogRetention(), log).
		WithClock(func() time.Time { return time.Now().In(cfg.Location) }).
		Purge(ctx)
	if err != nil {
		log.Error("purge sync logs", zap.Error(err), zap.Int64("deleted", report.Deleted))
		return 1
	}
	log.Info("purge finished",
		zap.Time("cutoff", report.Cutoff),
		zap.Int64("deleted", report.Deleted),
		zap.Strings("archives", report.Archives),
	)
	return 0
}
