package appointment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("Invalid appointment ID or appointment not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Appointment, error)

	Create(ctx context.Context, appt *Appointment) error
	Update(ctx context.Context, appt *Appointment) error

	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]Appointment, error)

	// Queue board
	ListCheckedInBetween(ctx context.Context, from, to time.Time) ([]Appointment, error)

	// Status sweep worker
	FindOverdueConfirmed(ctx context.Context, before time.Time) ([]Appointment, error)
}
