package doctor

import (
	"context"
	"errors"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// GetByDoctorID returns the doctor with schedules ordered by insertion.
	GetByDoctorID(ctx context.Context, doctorID string) (*Doctor, error)

	Create(ctx context.Context, doc *Doctor) error

	// UpsertSchedule overwrites the entry for (doctor, date) in place or
	// appends a new one.
	UpsertSchedule(ctx context.Context, doctorID string, entry ScheduleEntry) error

	List(ctx context.Context) ([]Doctor, error)
}
