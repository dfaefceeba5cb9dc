package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medqueue/medqueue-backend/internal/config"
	redisclient "github.com/medqueue/medqueue-backend/internal/redis"
)

// Sentinel errors. The messages are user-facing: the API layer forwards them
// verbatim inside the {success:false, message} result shape.
var (
	ErrMissingBookingFields  = errors.New("Missing required fields: patientId, doctorId, or dateTime")
	ErrPastDateTime          = errors.New("Appointment time must be in the future")
	ErrMissingModifyFields   = errors.New("Appointment ID and new date/time are required")
	ErrPastNewDateTime       = errors.New("New appointment time must be in the future")
	ErrAppointmentIDRequired = errors.New("Appointment ID is required")
	ErrAlreadyCancelled      = errors.New("Appointment is already cancelled")
	ErrAlreadyCheckedIn      = errors.New("Patient is already checked in")
)

// Notifier delivers a patient-facing message. Used by the status sweep to tell
// patients about no-show marks; delivery failures are logged, never fatal.
type Notifier interface {
	Notify(ctx context.Context, patientID, message string) error
}

type Service struct {
	repo     Repository
	cache    redisclient.Cache
	notifier Notifier
	cfg      config.Config
	log      zerolog.Logger
}

// NewService wires the lifecycle service. cache and notifier may be nil: the
// queue board then always hits the database, and sweeps skip notifications.
func NewService(repo Repository, cache redisclient.Cache, notifier Notifier, cfg config.Config, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Book creates a confirmed appointment for a patient with a doctor at a
// strictly future time. The new appointment has no queue number and is not
// checked in.
func (s *Service) Book(ctx context.Context, patientID, doctorID string, dateTime time.Time) (*Appointment, error) {
	if patientID == "" || doctorID == "" || dateTime.IsZero() {
		return nil, ErrMissingBookingFields
	}

	now := time.Now()
	if !dateTime.After(now) {
		return nil, ErrPastDateTime
	}

	appt := &Appointment{
		ID:        NewAppointmentID(),
		PatientID: patientID,
		DoctorID:  doctorID,
		DateTime:  dateTime,
		Status:    StatusConfirmed,
		BookedAt:  now,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("patient_id", patientID).
		Str("doctor_id", doctorID).
		Time("date_time", dateTime).
		Msg("appointment booked")

	return appt, nil
}

// Cancel marks an appointment cancelled. Cancelled is terminal: cancelling an
// already-cancelled appointment fails.
func (s *Service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	if id == "" {
		return nil, ErrAppointmentIDRequired
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	appt.Status = StatusCancelled
	appt.CancelledAt = &now

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	s.log.Info().Str("appointment_id", id).Msg("appointment cancelled")

	return appt, nil
}

// Modify reschedules an appointment to a new strictly future time. Current
// status is deliberately not checked: rescheduling a cancelled or completed
// appointment is permitted, matching the upstream behavior.
func (s *Service) Modify(ctx context.Context, id string, newDateTime time.Time) (*Appointment, error) {
	if id == "" || newDateTime.IsZero() {
		return nil, ErrMissingModifyFields
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !newDateTime.After(now) {
		return nil, ErrPastNewDateTime
	}

	appt.DateTime = newDateTime
	appt.ModifiedAt = &now

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("modify appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", id).
		Time("new_date_time", newDateTime).
		Msg("appointment modified")

	return appt, nil
}

// AssignQueueNumber assigns a queue number to an appointment. Idempotent: an
// existing number is returned unchanged with AlreadyAssigned set, and nothing
// is persisted. Numbers are not unique across appointments.
func (s *Service) AssignQueueNumber(ctx context.Context, id string) (*QueueAssignment, error) {
	if id == "" {
		return nil, ErrAppointmentIDRequired
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.QueueNumber != "" {
		return &QueueAssignment{
			AppointmentID:   id,
			QueueNumber:     appt.QueueNumber,
			AlreadyAssigned: true,
			GeneratedAt:     appt.UpdatedAt,
		}, nil
	}

	now := time.Now()
	appt.QueueNumber = NewQueueNumber(now)

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("assign queue number: %w", err)
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("queue_number", appt.QueueNumber).
		Msg("queue number assigned")

	return &QueueAssignment{
		AppointmentID: id,
		QueueNumber:   appt.QueueNumber,
		GeneratedAt:   now,
	}, nil
}

// CheckIn marks the patient as arrived. A queue number is assigned first when
// the appointment has none yet; a failed assignment fails the check-in.
// Checking in twice fails. A successful check-in invalidates today's cached
// queue board so the arrival shows up on the next read.
func (s *Service) CheckIn(ctx context.Context, id string) (*Appointment, error) {
	if id == "" {
		return nil, ErrAppointmentIDRequired
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.CheckedIn {
		return nil, ErrAlreadyCheckedIn
	}

	if appt.QueueNumber == "" {
		qa, err := s.AssignQueueNumber(ctx, id)
		if err != nil {
			return nil, err
		}
		appt.QueueNumber = qa.QueueNumber
	}

	now := time.Now()
	appt.CheckedIn = true
	appt.CheckedInAt = &now

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("check in patient: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, queueBoardKey(now)); err != nil {
			s.log.Warn().Err(err).Msg("queue board cache invalidation failed")
		}
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("queue_number", appt.QueueNumber).
		Msg("patient checked in")

	return appt, nil
}

// Get retrieves an appointment by ID.
func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	if id == "" {
		return nil, ErrAppointmentIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

// ListByPatient retrieves a patient's appointments, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]Appointment, error) {
	if limit <= 0 {
		limit = 20 // default
	}
	if limit > 100 {
		limit = 100 // max
	}
	if offset < 0 {
		offset = 0
	}

	appts, err := s.repo.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return appts, nil
}

func queueBoardKey(day time.Time) string {
	return "queueboard:" + day.Format("2006-01-02")
}

// TodayQueue lists today's checked-in appointments ordered by check-in time,
// served from the Redis cache when warm.
func (s *Service) TodayQueue(ctx context.Context) ([]QueueEntry, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	key := queueBoardKey(dayStart)

	if s.cache != nil {
		var cached []QueueEntry
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("queue board cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	appts, err := s.repo.ListCheckedInBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list today's queue: %w", err)
	}

	entries := make([]QueueEntry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, QueueEntry{
			QueueNumber:   a.QueueNumber,
			AppointmentID: a.ID,
			PatientID:     a.PatientID,
			DoctorID:      a.DoctorID,
			CheckedInAt:   a.CheckedInAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, entries, s.cfg.QueueCacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("queue board cache write failed")
		}
	}

	return entries, nil
}

// SweepOverdue applies the administrative transitions: confirmed appointments
// whose time passed at least the grace period ago become completed when the
// patient checked in, no-show otherwise. Intended to be called periodically by
// the worker.
func (s *Service) SweepOverdue(ctx context.Context) (*SweepResult, error) {
	cutoff := time.Now().Add(-s.cfg.NoShowGrace)

	overdue, err := s.repo.FindOverdueConfirmed(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find overdue appointments: %w", err)
	}

	var res SweepResult
	for _, appt := range overdue {
		a := appt
		if a.CheckedIn {
			a.Status = StatusCompleted
		} else {
			a.Status = StatusNoShow
		}

		if err := s.repo.Update(ctx, &a); err != nil {
			s.log.Error().Err(err).Str("appointment_id", a.ID).Msg("sweep update failed")
			continue
		}

		if a.Status == StatusCompleted {
			res.Completed++
			continue
		}

		res.NoShows++
		if s.notifier != nil {
			msg := fmt.Sprintf("You missed your appointment %s and it was marked as no-show. Please rebook.", a.ID)
			if err := s.notifier.Notify(ctx, a.PatientID, msg); err != nil {
				s.log.Error().Err(err).Str("appointment_id", a.ID).Msg("no-show notification failed")
			}
		}
	}

	return &res, nil
}
