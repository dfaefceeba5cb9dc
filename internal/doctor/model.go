package doctor

import (
	"time"
)

// Doctor is a clinician who publishes per-date availability. Doctors are
// auto-provisioned on first availability update, so name and specialization
// may still carry placeholder values.
type Doctor struct {
	DoctorID       string
	Name           string
	Specialization string
	Schedules      []ScheduleEntry
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScheduleEntry is one published availability window. At most one entry
// exists per (doctor, date); updating an existing date overwrites in place.
type ScheduleEntry struct {
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Available bool      `json:"available"`
	UpdatedAt time.Time `json:"updatedAt"`
}
