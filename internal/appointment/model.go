package appointment

import (
	"time"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// Appointment is one booking of a patient with a doctor. Patient and doctor
// references are opaque string IDs issued elsewhere; the booking system does
// not resolve them.
type Appointment struct {
	ID          string
	PatientID   string
	DoctorID    string
	DateTime    time.Time
	Status      Status
	QueueNumber string // empty until assigned; assigned at most once
	CheckedIn   bool
	CheckedInAt *time.Time
	BookedAt    time.Time
	ModifiedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QueueAssignment is the outcome of assigning a queue number.
// AlreadyAssigned is true when the appointment carried a number before the call.
type QueueAssignment struct {
	AppointmentID   string
	QueueNumber     string
	AlreadyAssigned bool
	GeneratedAt     time.Time
}

// QueueEntry is one row of the live queue board: a checked-in appointment for
// the current day.
type QueueEntry struct {
	QueueNumber   string     `json:"queueNumber"`
	AppointmentID string     `json:"appointmentId"`
	PatientID     string     `json:"patientId"`
	DoctorID      string     `json:"doctorId"`
	CheckedInAt   *time.Time `json:"checkedInAt"`
}

// SweepResult reports what one administrative status sweep changed.
type SweepResult struct {
	Completed int
	NoShows   int
}
