package repository

import (
	"context"
	"time"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
)

type AttendanceFilter struct {
	RegistrationNumber string
	EmployeeID         *uint
	CheckType          string
	LogStatus          string
	Status             string
	DateFrom           *time.Time // inclusive
	DateBefore         *time.Time // exclusive
	Limit              int
	Offset             int
}

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	// CountForDay counts punches of one registration number with check_date in [dayStart, dayEnd).
	CountForDay(ctx context.Context, registrationNumber string, dayStart, dayEnd time.Time) (int64, error)
	// List orders by check_date desc, id desc so pages stay stable while new punches arrive.
	List(ctx context.Context, f AttendanceFilter) ([]model.Attendance, int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return wrap("create attendance", r.db.WithContext(ctx).Create(attendance).Error)
}

func (r *attendanceRepository) CountForDay(ctx context.Context, registrationNumber string, dayStart, dayEnd time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("registration_number = ? AND check_date >= ? AND check_date < ?", registrationNumber, dayStart, dayEnd).
		Count(&count).Error
	return count, wrap("count daily attendances", err)
}

func (r *attendanceRepository) List(ctx context.Context, f AttendanceFilter) ([]model.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{})

	if f.RegistrationNumber != "" {
		query = query.Where("registration_number = ?", f.RegistrationNumber)
	}
	if f.EmployeeID != nil {
		query = query.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.CheckType != "" {
		query = query.Where("check_type = ?", f.CheckType)
	}
	if f.LogStatus != "" {
		query = query.Where("log_status = ?", f.LogStatus)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		query = query.Where("check_date >= ?", *f.DateFrom)
	}
	if f.DateBefore != nil {
		query = query.Where("check_date < ?", *f.DateBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap("count attendances", err)
	}

	var list []model.Attendance
	err := query.Order("check_date desc").Order("id desc").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	if err != nil {
		return nil, 0, wrap("list attendances", err)
	}
	return list, total, nil
}
