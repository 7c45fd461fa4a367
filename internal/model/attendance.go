package model

import "time"

const (
	CheckTypeEntry = "entrada"
	CheckTypeExit  = "salida"

	AttendanceSuccess = "success"
	AttendanceError   = "error"

	LogPending  = "pending"
	LogError    = "error"
	LogImported = "imported"
	LogFailed   = "failed"

	VerificationAutomatic = "automatic"
	VerificationManual    = "manual_review"
	VerificationApproved  = "approved"
	VerificationRejected  = "rejected"

	// MaxChecksPerDay caps punch records per employee per calendar day.
	MaxChecksPerDay = 6

	// CheckDateLayout is the storage/display format of check timestamps.
	CheckDateLayout = "2006-01-02 15:04:05"
)

type Attendance struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:128"` // cached employee name
	RegistrationNumber string    `json:"registration_number" gorm:"column:registration_number;size:32;index:idx_attendance_reg_date;not null"`
	EmployeeID         *uint     `json:"employee_id" gorm:"index"`
	CheckType          string    `json:"check_type" gorm:"size:16;not null"`
	CheckDate          time.Time `json:"check_date" gorm:"index:idx_attendance_reg_date;not null"`
	Latitude           *float64  `json:"latitude"`
	Longitude          *float64  `json:"longitude"`
	Status             string    `json:"status" gorm:"size:16;not null"`
	LogStatus          string    `json:"log_status" gorm:"size:16;not null"`
	LateTime           string    `json:"late_time" gorm:"size:8"`
	EarlyLeaveTime     string    `json:"early_leave_time" gorm:"size:8"`
	VerificationStatus string    `json:"verification_status" gorm:"size:16"`
	MatchPercentage    *float64  `json:"match_percentage"`
	Message            string    `json:"message" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AttachEmployee sets the correlation fields from e and recomputes the cached display name.
func (a *Attendance) AttachEmployee(e *Employee) {
	if e == nil {
		return
	}
	id := e.ID
	a.EmployeeID = &id
	a.RegistrationNumber = e.RegistrationNumber
	a.Name = e.Name
}

// ValidCheckType reports whether t is one of the two accepted punch types.
func ValidCheckType(t string) bool {
	return t == CheckTypeEntry || t == CheckTypeExit
}
