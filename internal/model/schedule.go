package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type WorkSchedule struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:128;not null"`
	HoursPerDay float64        `json:"hours_per_day"`
	Timezone    string         `json:"timezone" gorm:"size:64"`
	Active      bool           `json:"active" gorm:"not null"`
	Slots       []ScheduleSlot `json:"slots" gorm:"foreignKey:WorkScheduleID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ScheduleSlot is one attendance window of a schedule. Hours are fractional (8.5 = 08:30).
type ScheduleSlot struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	WorkScheduleID uint    `json:"work_schedule_id" gorm:"index;not null"`
	Name           string  `json:"name" gorm:"size:64"`
	DayOfWeek      int     `json:"day_of_week" gorm:"not null"`
	HourFrom       float64 `json:"hour_from"`
	HourTo         float64 `json:"hour_to"`
	DayPeriod      string  `json:"day_period" gorm:"size:16"`
}

var dayNames = map[int]string{
	0: "Lunes",
	1: "Martes",
	2: "Miércoles",
	3: "Jueves",
	4: "Viernes",
	5: "Sábado",
	6: "Domingo",
}

// DayName maps 0 (Monday) .. 6 (Sunday) to its name; other values pass through as digits.
func DayName(day int) string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return strconv.Itoa(day)
}

// FloatHoursToClock renders fractional hours as HH:MM:SS. Minutes are truncated, seconds are always 00.
func FloatHoursToClock(hours float64) string {
	whole := math.Trunc(hours)
	minutes := int((hours - whole) * 60)
	return fmt.Sprintf("%02d:%02d:00", int(whole), minutes)
}
