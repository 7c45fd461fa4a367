// Package repotest opens migrated in-memory SQLite databases for tests that need a
// real repository.Store.
package repotest

import (
	"testing"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DB is a private database with the store built on it.
type DB struct {
	*gorm.DB
	Store repository.Store
	t     testing.TB
}

// Open creates an empty database closed at the end of the test. now stamps
// created_at/updated_at; nil means time.Now in UTC.
func Open(t testing.TB, now func() time.Time) *DB {
	t.Helper()
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	db, err := config.OpenDB(sqlite.Open(config.MemoryDSN(uuid.NewString())), now)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &DB{DB: db, Store: repository.NewStore(db), t: t}
}

// Create inserts value and fails the test on error.
func (d *DB) Create(value any) {
	d.t.Helper()
	require.NoError(d.t, d.DB.Create(value).Error)
}

// Employee inserts an employee last modified at updatedAt.
func (d *DB) Employee(name, reg string, active bool, updatedAt time.Time) model.Employee {
	d.t.Helper()
	e := model.Employee{Name: name, RegistrationNumber: reg, Active: active, CreatedAt: updatedAt, UpdatedAt: updatedAt}
	d.Create(&e)
	return e
}

// UpdateEmployee writes columns through gorm, so updated_at is bumped to now.
func (d *DB) UpdateEmployee(id uint, columns map[string]any) {
	d.t.Helper()
	require.NoError(d.t, d.DB.Model(&model.Employee{ID: id}).Updates(columns).Error)
}

// Count returns the number of rows in model's table.
func (d *DB) Count(value any) int64 {
	d.t.Helper()
	var n int64
	require.NoError(d.t, d.DB.Model(value).Count(&n).Error)
	return n
}

// SyncLogs returns every sync log entry in insertion order.
func (d *DB) SyncLogs() []model.SyncLog {
	d.t.Helper()
	var list []model.SyncLog
	require.NoError(d.t, d.DB.Order("id asc").Find(&list).Error)
	return list
}
