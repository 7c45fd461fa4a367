package usecase

import (
	"context"
	"fmt"
	"time"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
)

type SyncQuery struct {
	DeviceID *string
	Full     bool
	Since    string // overrides the logged watermark when set
	Limit    int
	Offset   int
}

type SyncResult struct {
	IsFirstSync bool
	LastSync    *time.Time
	CurrentSync time.Time
	SyncType    string
	DeviceID    *string
	TotalCount  int64
	Count       int
	Limit       int
	Offset      int
	HasMore     bool
	Items       []model.EmployeeView
}

type SyncLogQuery struct {
	DeviceID *string
	SyncType string
	Status   string
	Limit    int
	Offset   int
}

type SyncLogPage struct {
	Items  []model.SyncLog
	Total  int64
	Limit  int
	Offset int
}

type SyncUsecase struct {
	store repository.Store
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger
	sync  syncRecorder
}

func NewSyncUsecase(store repository.Store, loc *time.Location, log *zap.Logger) *SyncUsecase {
	return &SyncUsecase{
		store: store,
		loc:   loc,
		now:   time.Now,
		log:   log,
		sync:  syncRecorder{store: store, log: log},
	}
}

// WithClock replaces the wall clock, for tests.
func (u *SyncUsecase) WithClock(now func() time.Time) *SyncUsecase {
	u.now = now
	return u
}

// SyncEmployees returns the employees changed since the stream's watermark, or every
// active employee on a first (or forced full) sync. Each call writes one sync log entry.
//
// A call with offset 0 starts a cycle. Calls with a non-zero offset continue the latest
// cycle of the stream: they reuse its watermark and full flag, and report its
// current_sync, so offsets keep pointing into the same ordered set.
func (u *SyncUsecase) SyncEmployees(ctx context.Context, q SyncQuery, caller Caller) (*SyncResult, error) {
	page := ClampPage(q.Limit, q.Offset)
	current := u.now().In(u.loc)

	full := q.Full
	entry := model.SyncLog{
		SyncDate:   current,
		SyncType:   syncTypeOf(full),
		DeviceID:   q.DeviceID,
		SourceIP:   caller.IP,
		Subject:    caller.Subject,
		PageOffset: page.Offset,
	}

	var (
		watermark  *time.Time
		window     repository.SyncWindow
		cycleStart = current
	)
	switch {
	case q.Since != "":
		since, err := ParseCheckDate(q.Since, u.loc)
		if err != nil {
			appErr := apperror.InvalidParameter("since", q.Since)
			u.sync.failure(ctx, entry, appErr)
			return nil, appErr
		}
		watermark = &since
	case page.Offset == 0:
		logged, err := u.sync.watermark(ctx, q.DeviceID, model.SyncTypeEmployees, model.SyncTypeFull)
		if err != nil {
			u.sync.failure(ctx, entry, err)
			return nil, err
		}
		watermark = logged
	default:
		start, err := u.sync.cycleStart(ctx, q.DeviceID, model.SyncTypeEmployees, model.SyncTypeFull)
		if err != nil {
			u.sync.failure(ctx, entry, err)
			return nil, err
		}
		if start != nil {
			watermark = start.PreviousSyncDate
			cycleStart = start.SyncDate.In(u.loc)
			full = full || start.SyncType == model.SyncTypeFull
			window.ChangedAfter = &cycleStart
		}
	}
	entry.SyncType = syncTypeOf(full)
	entry.PreviousSyncDate = watermark
	if !full {
		window.Since = watermark
	}

	list, total, err := u.store.Employees().ListForSync(ctx, window, page.Limit, page.Offset)
	if err != nil {
		u.sync.failure(ctx, entry, err)
		return nil, err
	}

	items := make([]model.EmployeeView, 0, len(list))
	for i := range list {
		items = append(items, model.NewEmployeeView(&list[i]))
	}

	entry.RecordsSynced = len(items)
	entry.Notes = fmt.Sprintf("offset=%d limit=%d total=%d", page.Offset, page.Limit, total)
	if err := u.sync.success(ctx, entry); err != nil {
		return nil, err
	}

	u.log.Info("employee sync",
		zap.Stringp("device_id", q.DeviceID),
		zap.String("sync_type", entry.SyncType),
		zap.Bool("first_sync", watermark == nil),
		zap.Int("offset", page.Offset),
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.String("subject", caller.Subject),
	)

	return &SyncResult{
		IsFirstSync: watermark == nil,
		LastSync:    watermark,
		CurrentSync: cycleStart,
		SyncType:    entry.SyncType,
		DeviceID:    q.DeviceID,
		TotalCount:  total,
		Count:       len(items),
		Limit:       page.Limit,
		Offset:      page.Offset,
		HasMore:     int64(page.Offset+len(items)) < total,
		Items:       items,
	}, nil
}

func syncTypeOf(full bool) string {
	if full {
		return model.SyncTypeFull
	}
	return model.SyncTypeEmployees
}

// ListLogs returns sync log entries, newest first.
func (u *SyncUsecase) ListLogs(ctx context.Context, q SyncLogQuery) (*SyncLogPage, error) {
	page := ClampPage(q.Limit, q.Offset)
	list, total, err := u.store.SyncLogs().List(ctx, repository.SyncLogFilter{
		DeviceID: q.DeviceID,
		SyncType: q.SyncType,
		Status:   q.Status,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.SyncLog{}
	}
	return &SyncLogPage{Items: list, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}
