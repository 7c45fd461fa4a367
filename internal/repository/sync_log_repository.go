package repository

import (
	"context"
	"time"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
)

type SyncLogFilter struct {
	DeviceID *string
	SyncType string
	Status   string
	Limit    int
	Offset   int
}

type SyncLogRepository interface {
	Create(ctx context.Context, entry *model.SyncLog) error
	// LastCycleStart returns the newest successful first-page entry (page_offset 0) of the
	// given types for the device, or for the global stream when deviceID is nil.
	// ErrNotFound when none.
	LastCycleStart(ctx context.Context, deviceID *string, syncTypes ...string) (*model.SyncLog, error)
	List(ctx context.Context, f SyncLogFilter) ([]model.SyncLog, int64, error)
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.SyncLog, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db}
}

func (r *syncLogRepository) Create(ctx context.Context, entry *model.SyncLog) error {
	return wrap("create sync log", r.db.WithContext(ctx).Create(entry).Error)
}

func (r *syncLogRepository) LastCycleStart(ctx context.Context, deviceID *string, syncTypes ...string) (*model.SyncLog, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND page_offset = ? AND sync_type IN ?", model.SyncSuccess, 0, syncTypes)
	if deviceID == nil {
		query = query.Where("device_id IS NULL")
	} else {
		query = query.Where("device_id = ?", *deviceID)
	}

	var entry model.SyncLog
	if err := query.Order("sync_date desc").Order("id desc").First(&entry).Error; err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *syncLogRepository) List(ctx context.Context, f SyncLogFilter) ([]model.SyncLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SyncLog{})
	if f.DeviceID != nil {
		query = query.Where("device_id = ?", *f.DeviceID)
	}
	if f.SyncType != "" {
		query = query.Where("sync_type = ?", f.SyncType)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap("count sync logs", err)
	}

	var list []model.SyncLog
	err := query.Order("sync_date desc").Order("id desc").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	if err != nil {
		return nil, 0, wrap("list sync logs", err)
	}
	return list, total, nil
}

func (r *syncLogRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.SyncLog, error) {
	var list []model.SyncLog
	err := r.db.WithContext(ctx).Where("sync_date < ?", cutoff).Order("id asc").Limit(limit).Find(&list).Error
	return list, wrap("list expired sync logs", err)
}

func (r *syncLogRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&model.SyncLog{}, ids)
	return res.RowsAffected, wrap("delete sync logs", res.Error)
}

func (r *syncLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("sync_date < ?", cutoff).Delete(&model.SyncLog{})
	return res.RowsAffected, wrap("purge sync logs", res.Error)
}
