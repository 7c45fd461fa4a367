package config

import (
	"fmt"
	"time"

	"timeclock-sync/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN names a private in-memory SQLite database that lives as long as its connection.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

// ConnectDB opens the configured database and migrates the schema.
// DB_DRIVER=memory uses an in-memory SQLite database; DATABASE_DSN is ignored then.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		dialector = mysql.Open(cfg.DatabaseDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "memory":
		dialector = sqlite.Open(MemoryDSN("timeclock"))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return OpenDB(dialector, func() time.Time {
		return time.Now().In(cfg.Location)
	})
}

// OpenDB connects through dialector with the service's gorm settings and migrates the schema.
// now stamps created_at/updated_at. SQLite gets a single connection, which serializes
// transactions and keeps the in-memory database alive.
func OpenDB(dialector gorm.Dialector, now func() time.Time) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
		NowFunc:                                  now,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Department{},
		&model.JobPosition{},
		&model.WorkSchedule{},
		&model.ScheduleSlot{},
		&model.Employee{},
		&model.Contract{},
		&model.Attendance{},
		&model.SyncLog{},
		&model.Setting{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
