package api

import (
	"time"

	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/doctor"
	"github.com/medqueue/medqueue-backend/internal/notification"
)

// Requests. Payloads are validated before they reach the services; pointer
// fields distinguish absent keys from zero values.

type BookRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	DoctorID  string `json:"doctorId" validate:"required"`
	DateTime  string `json:"dateTime" validate:"required"`
}

type ModifyRequest struct {
	NewDateTime string `json:"newDateTime" validate:"required"`
}

type AvailabilityRequest struct {
	Date      *string `json:"date" validate:"required"`
	StartTime *string `json:"startTime" validate:"required"`
	EndTime   *string `json:"endTime" validate:"required"`
	Available *bool   `json:"available" validate:"required"`
}

type SendNotificationRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	Message   string `json:"message"`
}

// Responses. Every operation answers with a success flag and a message; the
// remaining fields are nulled on failure.

type AppointmentPayload struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	DoctorID    string     `json:"doctorId"`
	DateTime    time.Time  `json:"dateTime"`
	Status      string     `json:"status"`
	QueueNumber *string    `json:"queueNumber"`
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
	BookedAt    time.Time  `json:"bookedAt"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

func appointmentPayload(a *appointment.Appointment) *AppointmentPayload {
	var queueNumber *string
	if a.QueueNumber != "" {
		qn := a.QueueNumber
		queueNumber = &qn
	}
	return &AppointmentPayload{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		DateTime:    a.DateTime,
		Status:      string(a.Status),
		QueueNumber: queueNumber,
		CheckedIn:   a.CheckedIn,
		CheckedInAt: a.CheckedInAt,
		BookedAt:    a.BookedAt,
		ModifiedAt:  a.ModifiedAt,
		CancelledAt: a.CancelledAt,
	}
}

type BookResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	AppointmentID *string             `json:"appointmentId"`
	Appointment   *AppointmentPayload `json:"appointment,omitempty"`
}

type CancelResponse struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

type ModifyResponse struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
	NewDateTime   *time.Time `json:"newDateTime,omitempty"`
	ModifiedAt    *time.Time `json:"modifiedAt,omitempty"`
}

type QueueNumberResponse struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	QueueNumber   *string    `json:"queueNumber"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`
}

type CheckInResponse struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	Status        *string    `json:"status"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
	QueueNumber   *string    `json:"queueNumber,omitempty"`
	CheckedInAt   *time.Time `json:"checkedInAt,omitempty"`
}

type AvailabilityResponse struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message"`
	DoctorID  *string               `json:"doctorId,omitempty"`
	Schedule  *doctor.ScheduleEntry `json:"schedule,omitempty"`
	UpdatedAt *time.Time            `json:"updatedAt,omitempty"`
}

type SendNotificationResponse struct {
	Success             bool       `json:"success"`
	Message             string     `json:"message"`
	NotificationID      *string    `json:"notificationId"`
	PatientID           *string    `json:"patientId,omitempty"`
	NotificationMessage *string    `json:"notificationMessage,omitempty"`
	SentAt              *time.Time `json:"sentAt,omitempty"`
	DeliveryMethod      *string    `json:"deliveryMethod,omitempty"`
}

type GetAppointmentResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Appointment *AppointmentPayload `json:"appointment,omitempty"`
}

type ListAppointmentsResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Appointments []AppointmentPayload `json:"appointments"`
}

type DoctorPayload struct {
	DoctorID       string                 `json:"doctorId"`
	Name           string                 `json:"name"`
	Specialization string                 `json:"specialization"`
	Schedules      []doctor.ScheduleEntry `json:"schedules"`
}

type ListDoctorsResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Doctors []DoctorPayload `json:"doctors"`
}

type QueueBoardResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Date    string                   `json:"date"`
	Queue   []appointment.QueueEntry `json:"queue"`
}

type NotificationPayload struct {
	NotificationID string    `json:"notificationId"`
	PatientID      string    `json:"patientId"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	DeliveryMethod string    `json:"deliveryMethod"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sentAt"`
}

func notificationPayload(n notification.Notification) NotificationPayload {
	return NotificationPayload{
		NotificationID: n.ID,
		PatientID:      n.PatientID,
		Message:        n.Message,
		Type:           string(n.Type),
		DeliveryMethod: string(n.DeliveryMethod),
		Status:         string(n.Status),
		SentAt:         n.SentAt,
	}
}

type ListNotificationsResponse struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message"`
	Notifications []NotificationPayload `json:"notifications"`
}
