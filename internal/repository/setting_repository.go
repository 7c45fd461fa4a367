package repository

import (
	"context"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var s model.Setting
	// Find + Limit(1) so a missing key is not logged as an error by gorm;
	// struct conditions let the dialect quote the reserved "key" column
	err := r.db.WithContext(ctx).Where(&model.Setting{Key: key}).Limit(1).Find(&s).Error
	if err != nil {
		return "", false, wrap("get setting", err)
	}
	if s.Key == "" {
		return "", false, nil
	}
	return s.Value, true, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	s := model.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	return wrap("set setting", err)
}
