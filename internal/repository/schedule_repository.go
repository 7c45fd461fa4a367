package repository

import (
	"context"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	List(ctx context.Context, active *bool) ([]model.WorkSchedule, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db}
}

func (r *scheduleRepository) List(ctx context.Context, active *bool) ([]model.WorkSchedule, error) {
	// Slots are ordered so the projection lists Monday first
	query := r.db.WithContext(ctx).Preload("Slots", func(db *gorm.DB) *gorm.DB {
		return db.Order("day_of_week asc").Order("hour_from asc")
	})
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var list []model.WorkSchedule
	err := query.Order("name asc").Find(&list).Error
	return list, wrap("list schedules", err)
}
