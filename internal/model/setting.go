package model

import "time"

const (
	SettingAPIEnabled  = "attendance_api.enabled"
	SettingAPIUsername = "attendance_api.username"
	SettingAPIPassword = "attendance_api.password"
	SettingJWTSecret   = "attendance_api.jwt_secret"
)

type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "api_settings"
}
