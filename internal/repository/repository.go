// Package repository holds the gorm-backed persistence for every table of the
// service, grouped behind Store so a request can run inside one transaction.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Store gives access to every repository bound to the same connection or transaction.
type Store interface {
	Employees() EmployeeRepository
	Departments() DepartmentRepository
	Jobs() JobRepository
	Schedules() ScheduleRepository
	Attendances() AttendanceRepository
	SyncLogs() SyncLogRepository
	Settings() SettingRepository

	// WithTx runs fn inside a transaction: committed when fn returns nil,
	// rolled back when it returns an error or panics.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Employees() EmployeeRepository     { return NewEmployeeRepository(s.db) }
func (s *gormStore) Departments() DepartmentRepository { return NewDepartmentRepository(s.db) }
func (s *gormStore) Jobs() JobRepository               { return NewJobRepository(s.db) }
func (s *gormStore) Schedules() ScheduleRepository     { return NewScheduleRepository(s.db) }
func (s *gormStore) Attendances() AttendanceRepository { return NewAttendanceRepository(s.db) }
func (s *gormStore) SyncLogs() SyncLogRepository       { return NewSyncLogRepository(s.db) }
func (s *gormStore) Settings() SettingRepository       { return NewSettingRepository(s.db) }

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// groupCount is the scan target of "count per foreign key" queries.
type groupCount struct {
	GroupID uint
	Total   int64
}

func countsToMap(rows []groupCount) map[uint]int64 {
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.GroupID] = r.Total
	}
	return out
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, translate(err))
}
