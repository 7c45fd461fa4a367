// Package usecase implements the attendance API operations on top of repository.Store.
package usecase

import (
	"context"
	"errors"
	"time"

	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Caller identifies who issued a request, for sync bookkeeping and audit logs.
type Caller struct {
	IP      string
	Subject string
}

// Page is a clamped limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// ClampPage applies the default limit of 100, clamps it to [1, 1000] and the offset to >= 0.
// A zero limit means "not given".
func ClampPage(limit, offset int) Page {
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// syncRecorder writes sync log entries. Failures while recording an error entry are
// logged and dropped so the original error reaches the client.
type syncRecorder struct {
	store repository.Store
	log   *zap.Logger
}

// cycleStart returns the first-page entry of the stream's latest successful cycle of
// the given types, nil when the stream never synced.
func (r syncRecorder) cycleStart(ctx context.Context, deviceID *string, syncTypes ...string) (*model.SyncLog, error) {
	last, err := r.store.SyncLogs().LastCycleStart(ctx, deviceID, syncTypes...)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return last, nil
}

// watermark is the sync_date of the latest cycle start, nil when there is none.
func (r syncRecorder) watermark(ctx context.Context, deviceID *string, syncTypes ...string) (*time.Time, error) {
	start, err := r.cycleStart(ctx, deviceID, syncTypes...)
	if err != nil || start == nil {
		return nil, err
	}
	at := start.SyncDate
	return &at, nil
}

func (r syncRecorder) success(ctx context.Context, entry model.SyncLog) error {
	entry.Status = model.SyncSuccess
	return r.store.SyncLogs().Create(ctx, &entry)
}

func (r syncRecorder) failure(ctx context.Context, entry model.SyncLog, cause error) {
	entry.Status = model.SyncError
	entry.Notes = cause.Error()
	if err := r.store.SyncLogs().Create(ctx, &entry); err != nil {
		r.log.Warn("could not record failed sync",
			zap.String("sync_type", entry.SyncType),
			zap.Stringp("device_id", entry.DeviceID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}
