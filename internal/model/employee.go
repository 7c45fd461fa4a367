package model

import "time"

type Employee struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:128;not null"`
	RegistrationNumber string    `json:"registration_number" gorm:"column:registration_number;size:32;uniqueIndex;not null"`
	DepartmentID       *uint     `json:"department_id" gorm:"index"`
	JobID              *uint     `json:"job_id" gorm:"index"`
	WorkScheduleID     *uint     `json:"work_schedule_id"`
	WorkEmail          string    `json:"work_email" gorm:"size:128"`
	MobilePhone        string    `json:"mobile_phone" gorm:"size:32"`
	Active             bool      `json:"active" gorm:"not null;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"index"` // watermark column for incremental sync

	// relations
	Department   *Department   `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Job          *JobPosition  `json:"job,omitempty" gorm:"foreignKey:JobID"`
	WorkSchedule *WorkSchedule `json:"work_schedule,omitempty" gorm:"foreignKey:WorkScheduleID"`
	Contracts    []Contract    `json:"contracts,omitempty"`
}

// HasOpenContract reports whether any loaded contract is in the open state.
func (e *Employee) HasOpenContract() bool {
	for _, c := range e.Contracts {
		if c.State == ContractOpen {
			return true
		}
	}
	return false
}

const (
	ContractDraft  = "draft"
	ContractOpen   = "open"
	ContractClosed = "close"
	ContractCancel = "cancel"
)

type Contract struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	EmployeeID uint       `json:"employee_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"size:128"`
	DateStart  time.Time  `json:"date_start"`
	DateEnd    *time.Time `json:"date_end"`
	State      string     `json:"state" gorm:"size:16;index;not null"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type JobPosition struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"size:128;not null"`
	DepartmentID *uint       `json:"department_id" gorm:"index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
