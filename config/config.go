// Package config reads process configuration from the environment and the
// persisted API settings from the database.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env                  string
	HTTPAddr             string
	DBDriver             string
	DatabaseDSN          string
	Location             *time.Location
	SyncLogRetentionDays int
	MaintenanceInterval  time.Duration

	ArchiveBucket    string
	ArchiveRegion    string
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string

	// seed values for api_settings, used by cmd/seeder only
	SeedAPIUsername string
	SeedAPIPassword string
	SeedAPIEnabled  bool
}

// Load builds a Config from environment variables, applying development defaults.
func Load() (*Config, error) {
	loc, err := time.LoadLocation(GetEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	interval, err := time.ParseDuration(GetEnv("MAINTENANCE_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAINTENANCE_INTERVAL: %w", err)
	}

	driver := GetEnv("DB_DRIVER", "mysql")
	switch driver {
	case "mysql", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return &Config{
		Env:                  GetEnv("APP_ENV", "development"),
		HTTPAddr:             GetEnv("HTTP_ADDR", ":3000"),
		DBDriver:             driver,
		DatabaseDSN:          GetEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/timeclock?charset=utf8mb4&parseTime=True&loc=Local"),
		Location:             loc,
		SyncLogRetentionDays: GetEnvAsInt("SYNC_LOG_RETENTION_DAYS", 90),
		MaintenanceInterval:  interval,
		ArchiveBucket:        GetEnv("ARCHIVE_S3_BUCKET", ""),
		ArchiveRegion:        GetEnv("ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveEndpoint:      GetEnv("ARCHIVE_S3_ENDPOINT", ""),
		ArchiveAccessKey:     GetEnv("ARCHIVE_S3_ACCESS_KEY", ""),
		ArchiveSecretKey:     GetEnv("ARCHIVE_S3_SECRET_KEY", ""),
		SeedAPIUsername:      GetEnv("API_USERNAME", ""),
		SeedAPIPassword:      GetEnv("API_PASSWORD", ""),
		SeedAPIEnabled:       GetEnvAsBool("API_ENABLED", true),
	}, nil
}

// SyncLogRetention is the age after which sync log entries are purged.
func (c *Config) SyncLogRetention() time.Duration {
	return time.Duration(c.SyncLogRetentionDays) * 24 * time.Hour
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
