package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors with user-facing messages, forwarded verbatim by the API
// layer.
var (
	ErrDoctorIDRequired   = errors.New("Doctor ID is required")
	ErrScheduleRequired   = errors.New("Valid schedule object is required")
	ErrScheduleIncomplete = errors.New("Schedule must include: date, startTime, endTime, available")
)

// Placeholder identity for doctors provisioned on first availability update.
const (
	placeholderSpecialization = "General Medicine"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ScheduleUpdate is a fully validated availability upsert request. Pointer
// fields let the API layer distinguish absent keys from zero values.
type ScheduleUpdate struct {
	Date      string
	StartTime string
	EndTime   string
	Available bool
}

// UpdateAvailability upserts one schedule entry for a doctor, provisioning
// the doctor with placeholder details when it does not exist yet. The entry
// for an already-published date is overwritten in place; a new date appends.
func (s *Service) UpdateAvailability(ctx context.Context, doctorID string, upd ScheduleUpdate) (*ScheduleEntry, error) {
	if doctorID == "" {
		return nil, ErrDoctorIDRequired
	}
	if upd.Date == "" || upd.StartTime == "" || upd.EndTime == "" {
		return nil, ErrScheduleIncomplete
	}

	_, err := s.repo.GetByDoctorID(ctx, doctorID)
	if err != nil {
		if !errors.Is(err, ErrDoctorNotFound) {
			return nil, fmt.Errorf("load doctor: %w", err)
		}

		doc := &Doctor{
			DoctorID:       doctorID,
			Name:           "Dr. " + doctorID,
			Specialization: placeholderSpecialization,
		}
		if err := s.repo.Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("provision doctor: %w", err)
		}
		s.log.Info().Str("doctor_id", doctorID).Msg("doctor auto-provisioned")
	}

	entry := ScheduleEntry{
		Date:      upd.Date,
		StartTime: upd.StartTime,
		EndTime:   upd.EndTime,
		Available: upd.Available,
		UpdatedAt: time.Now(),
	}

	if err := s.repo.UpsertSchedule(ctx, doctorID, entry); err != nil {
		return nil, fmt.Errorf("upsert schedule: %w", err)
	}

	s.log.Info().
		Str("doctor_id", doctorID).
		Str("date", entry.Date).
		Bool("available", entry.Available).
		Msg("availability updated")

	return &entry, nil
}

// Get retrieves a doctor and its published schedule.
func (s *Service) Get(ctx context.Context, doctorID string) (*Doctor, error) {
	if doctorID == "" {
		return nil, ErrDoctorIDRequired
	}
	return s.repo.GetByDoctorID(ctx, doctorID)
}

// List retrieves all doctors with their schedules.
func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return docs, nil
}
