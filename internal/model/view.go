package model

import "time"

// Ref is the {id, name} pair used for many2one fields in projections.
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EmployeeView struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Department         *Ref      `json:"department"`
	Job                *Ref      `json:"job"`
	Schedule           *Ref      `json:"schedule"`
	WorkEmail          string    `json:"work_email"`
	MobilePhone        string    `json:"mobile_phone"`
	Active             bool      `json:"active"`
	HasOpenContract    bool      `json:"has_open_contract"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewEmployeeView(e *Employee) EmployeeView {
	v := EmployeeView{
		ID:                 e.ID,
		Name:               e.Name,
		RegistrationNumber: e.RegistrationNumber,
		WorkEmail:          e.WorkEmail,
		MobilePhone:        e.MobilePhone,
		Active:             e.Active,
		HasOpenContract:    e.HasOpenContract(),
		UpdatedAt:          e.UpdatedAt,
	}
	if e.Department != nil {
		v.Department = &Ref{ID: e.Department.ID, Name: e.Department.Name}
	}
	if e.Job != nil {
		v.Job = &Ref{ID: e.Job.ID, Name: e.Job.Name}
	}
	if e.WorkSchedule != nil {
		v.Schedule = &Ref{ID: e.WorkSchedule.ID, Name: e.WorkSchedule.Name}
	}
	return v
}

type DepartmentView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	CompleteName  string `json:"complete_name"`
	Parent        *Ref   `json:"parent"`
	Manager       *Ref   `json:"manager"`
	EmployeeCount int64  `json:"employee_count"`
	Active        bool   `json:"active"`
}

func NewDepartmentView(d *Department, employeeCount int64) DepartmentView {
	v := DepartmentView{
		ID:            d.ID,
		Name:          d.Name,
		CompleteName:  d.CompleteName(),
		EmployeeCount: employeeCount,
		Active:        d.Active,
	}
	if d.Parent != nil {
		v.Parent = &Ref{ID: d.Parent.ID, Name: d.Parent.Name}
	}
	if d.Manager != nil {
		v.Manager = &Ref{ID: d.Manager.ID, Name: d.Manager.Name}
	}
	return v
}

type JobView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Department    *Ref   `json:"department"`
	EmployeeCount int64  `json:"employee_count"`
}

func NewJobView(j *JobPosition, employeeCount int64) JobView {
	v := JobView{ID: j.ID, Name: j.Name, EmployeeCount: employeeCount}
	if j.Department != nil {
		v.Department = &Ref{ID: j.Department.ID, Name: j.Department.Name}
	}
	return v
}

type ScheduleSlotView struct {
	Name      string `json:"name"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	HourFrom  string `json:"hour_from"`
	HourTo    string `json:"hour_to"`
	DayPeriod string `json:"day_period"`
}

type ScheduleView struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	HoursPerDay float64            `json:"hours_per_day"`
	Timezone    string             `json:"timezone"`
	Attendances []ScheduleSlotView `json:"attendances"`
}

func NewScheduleView(s *WorkSchedule) ScheduleView {
	v := ScheduleView{
		ID:          s.ID,
		Name:        s.Name,
		HoursPerDay: s.HoursPerDay,
		Timezone:    s.Timezone,
		Attendances: make([]ScheduleSlotView, 0, len(s.Slots)),
	}
	for _, slot := range s.Slots {
		v.Attendances = append(v.Attendances, ScheduleSlotView{
			Name:      slot.Name,
			DayOfWeek: slot.DayOfWeek,
			DayName:   DayName(slot.DayOfWeek),
			HourFrom:  FloatHoursToClock(slot.HourFrom),
			HourTo:    FloatHoursToClock(slot.HourTo),
			DayPeriod: slot.DayPeriod,
		})
	}
	return v
}

type AttendanceView struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	RegistrationNumber string   `json:"registration_number"`
	EmployeeID         *uint    `json:"employee_id"`
	CheckType          string   `json:"check_type"`
	CheckDate          string   `json:"check_date"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Status             string   `json:"status"`
	LogStatus          string   `json:"log_status"`
	LateTime           string   `json:"late_time"`
	EarlyLeaveTime     string   `json:"early_leave_time"`
	VerificationStatus string   `json:"verification_status"`
	MatchPercentage    *float64 `json:"match_percentage"`
	Message            string   `json:"message"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func NewAttendanceView(a *Attendance) AttendanceView {
	return AttendanceView{
		ID:                 a.ID,
		Name:               a.Name,
		RegistrationNumber: a.RegistrationNumber,
		EmployeeID:         a.EmployeeID,
		CheckType:          a.CheckType,
		CheckDate:          a.CheckDate.Format(CheckDateLayout),
		Latitude:           a.Latitude,
		Longitude:          a.Longitude,
		Status:             a.Status,
		LogStatus:          a.LogStatus,
		LateTime:           a.LateTime,
		EarlyLeaveTime:     a.EarlyLeaveTime,
		VerificationStatus: a.VerificationStatus,
		MatchPercentage:    a.MatchPercentage,
		Message:            a.Message,
		CreatedAt:          a.CreatedAt.Format(CheckDateLayout),
		UpdatedAt:          a.UpdatedAt.Format(CheckDateLayout),
	}
}
