package model

import "time"

const (
	SyncTypeEmployees   = "employees"
	SyncTypeAttendances = "attendances"
	SyncTypeFull        = "full"

	SyncSuccess = "success"
	SyncError   = "error"
)

// SyncLog is one synchronization attempt of a device (or of the global stream when DeviceID is nil).
// Rows are never updated after insert. An entry with PageOffset 0 starts a sync cycle; later
// pages of the cycle reuse its PreviousSyncDate.
type SyncLog struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	SyncDate         time.Time  `json:"sync_date" gorm:"index;not null"`
	SyncType         string     `json:"sync_type" gorm:"size:16;index;not null"`
	DeviceID         *string    `json:"device_id" gorm:"size:64;index"`
	RecordsSynced    int        `json:"records_synced"`
	PageOffset       int        `json:"page_offset" gorm:"not null;default:0"`
	Status           string     `json:"status" gorm:"size:16;not null"`
	SourceIP         string     `json:"source_ip" gorm:"size:64"`
	Subject          string     `json:"subject" gorm:"size:128"`
	PreviousSyncDate *time.Time `json:"previous_sync_date"`
	Notes            string     `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
}
