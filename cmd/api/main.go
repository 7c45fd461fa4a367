package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/auth"
	"timeclock-sync/internal/database"
	applogger "timeclock-sync/internal/logger"
	"timeclock-sync/internal/maintenance"
	"timeclock-sync/internal/routes"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(start())
}

// start returns the process exit code so deferred cleanup runs before os.Exit.
func start() int {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		applogger.New("development").Error("load config", zap.Error(err))
		return 1
	}
	log := applogger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Warn(".env not found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	store, closeStore, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	settings, err := config.LoadAPISettings(ctx, store.Settings())
	if err != nil {
		return fmt.Errorf("load api settings: %w", err)
	}
	if !settings.CredentialsConfigured() {
		log.Warn("API credentials are not configured, login will fail until the seeder runs")
	}

	app := fiber.New(fiber.Config{
		AppName:      "timeclock-sync " + Version,
		ErrorHandler: apperror.FiberErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("panic recovered", zap.Any("panic", e), zap.String("path", c.Path()), zap.Stack("stack"))
		},
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())
	app.Use(logger.New())

	routes.Setup(app, routes.Deps{
		Store:    store,
		Settings: settings,
		Tokens:   auth.NewTokenManager(settings.JWTSecret),
		Validate: usecase.NewValidator(),
		Location: cfg.Location,
		Log:      log,
		Version:  Version,
	})

	if cfg.MaintenanceInterval > 0 {
		var archiver maintenance.Archiver
		if cfg.ArchiveBucket != "" {
			client, err := maintenance.NewS3Client(ctx, cfg)
			if err != nil {
				return fmt.Errorf("s3 client: %w", err)
			}
			archiver = maintenance.NewS3Archiver(client, cfg.ArchiveBucket)
		}
		cleaner := maintenance.NewCleaner(store, archiver, cfg.SyncLogRetention(), log).
			WithClock(func() time.Time { return time.Now().In(cfg.Location) })
		go cleaner.Run(ctx, cfg.MaintenanceInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("version", Version))
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
