package repository

import (
	"context"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
)

type JobRepository interface {
	List(ctx context.Context, departmentID *uint) ([]model.JobPosition, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db}
}

func (r *jobRepository) List(ctx context.Context, departmentID *uint) ([]model.JobPosition, error) {
	query := r.db.WithContext(ctx).Preload("Department")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var list []model.JobPosition
	err := query.Order("name asc").Find(&list).Error
	return list, wrap("list job positions", err)
}
