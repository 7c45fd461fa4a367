package repository

import (
	"context"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	List(ctx context.Context, active *bool) ([]model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db}
}

func (r *departmentRepository) List(ctx context.Context, active *bool) ([]model.Department, error) {
	query := r.db.WithContext(ctx).Preload("Parent").Preload("Manager")
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var list []model.Department
	err := query.Order("name asc").Find(&list).Error
	return list, wrap("list departments", err)
}
