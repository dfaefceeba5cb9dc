package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors with user-facing messages, forwarded verbatim by the API
// layer.
var (
	ErrPatientIDRequired = errors.New("Patient ID is required")
	ErrEmptyMessage      = errors.New("Notification message cannot be empty")
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Send records a notification for a patient. Delivery is simulated: the
// message is written to the log and stored with method "console" and status
// "sent". The message is trimmed and must be non-empty after trimming.
func (s *Service) Send(ctx context.Context, patientID, message string) (*Notification, error) {
	if patientID == "" {
		return nil, ErrPatientIDRequired
	}

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	n := &Notification{
		ID:             NewNotificationID(),
		PatientID:      patientID,
		Message:        trimmed,
		Type:           TypeGeneral,
		DeliveryMethod: DeliveryConsole,
		Status:         StatusSent,
		SentAt:         time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	// Console delivery.
	s.log.Info().
		Str("notification_id", n.ID).
		Str("patient_id", patientID).
		Str("message", trimmed).
		Msg("notification sent")

	return n, nil
}

// Notify is the fire-and-forget form of Send used by other services.
func (s *Service) Notify(ctx context.Context, patientID, message string) error {
	_, err := s.Send(ctx, patientID, message)
	return err
}

// ListByPatient retrieves a patient's notifications, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID string, limit int) ([]Notification, error) {
	if patientID == "" {
		return nil, ErrPatientIDRequired
	}
	if limit <= 0 {
		limit = 50
	}

	list, err := s.repo.ListByPatient(ctx, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications by patient: %w", err)
	}
	return list, nil
}
