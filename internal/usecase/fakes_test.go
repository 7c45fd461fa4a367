package usecase

import (
	"context"
	"errors"

	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

var (
	errListDown = errors.New("employee table unavailable")
	errLogDown  = errors.New("sync log table locked")
)

// brokenLogStore fails every sync log insert.
type brokenLogStore struct {
	repository.Store
	failListing bool
}

func (s *brokenLogStore) SyncLogs() repository.SyncLogRepository {
	return brokenLogs{s.Store.SyncLogs()}
}

func (s *brokenLogStore) Employees() repository.EmployeeRepository {
	if s.failListing {
		return brokenEmployees{s.Store.Employees()}
	}
	return s.Store.Employees()
}

type brokenLogs struct {
	repository.SyncLogRepository
}

func (brokenLogs) Create(context.Context, *model.SyncLog) error {
	return errLogDown
}

type brokenEmployees struct {
	repository.EmployeeRepository
}

func (brokenEmployees) ListForSync(context.Context, repository.SyncWindow, int, int) ([]model.Employee, int64, error) {
	return nil, 0, errListDown
}
