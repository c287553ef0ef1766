package entities

import (
	"time"
)

// Weekday is a closed enumeration of schedule days
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// Valid reports whether d is one of the seven known weekdays
func (d Weekday) Valid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	}
	return false
}

// ScheduleEntry is one weekly availability window
type ScheduleEntry struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

// Doctor represents a practitioner. Reference data for the booking engine;
// the engine never checks availability conflicts against the schedule.
type Doctor struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Role      string          `json:"role" db:"role"`
	Schedule  []ScheduleEntry `json:"schedule" db:"schedule"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}
