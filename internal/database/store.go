package database

import (
	"context"
	"fmt"

	"timeclock-sync/config"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
)

// OpenStore returns the repository store for cfg.DBDriver and a function releasing it.
// The memory driver starts pre-seeded with the demo directory.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, func(), error) {
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	closeDB := func() { _ = sqlDB.Close() }
	log.Info("database connected", zap.String("driver", cfg.DBDriver))

	if cfg.DBDriver == "memory" {
		if err := SeedAll(ctx, db, cfg, log); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("seed memory database: %w", err)
		}
		log.Warn("using the in-memory database, data is lost on exit")
	}

	return repository.NewStore(db), closeDB, nil
}
