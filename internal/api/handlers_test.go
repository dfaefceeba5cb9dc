package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/doctor"
	"github.com/medqueue/medqueue-backend/internal/notification"
)

type fakeBookings struct {
	book        func(patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error)
	cancel      func(id string) (*appointment.Appointment, error)
	modify      func(id string, newDateTime time.Time) (*appointment.Appointment, error)
	assignQueue func(id string) (*appointment.QueueAssignment, error)
	checkIn     func(id string) (*appointment.Appointment, error)
}

func (f *fakeBookings) Book(ctx context.Context, patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error) {
	return f.book(patientID, doctorID, dateTime)
}

func (f *fakeBookings) Cancel(ctx context.Context, id string) (*appointment.Appointment, error) {
	return f.cancel(id)
}

func (f *fakeBookings) Modify(ctx context.Context, id string, newDateTime time.Time) (*appointment.Appointment, error) {
	return f.modify(id, newDateTime)
}

func (f *fakeBookings) AssignQueueNumber(ctx context.Context, id string) (*appointment.QueueAssignment, error) {
	return f.assignQueue(id)
}

func (f *fakeBookings) CheckIn(ctx context.Context, id string) (*appointment.Appointment, error) {
	return f.checkIn(id)
}

func (f *fakeBookings) Get(ctx context.Context, id string) (*appointment.Appointment, error) {
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeBookings) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeBookings) TodayQueue(ctx context.Context) ([]appointment.QueueEntry, error) {
	return []appointment.QueueEntry{}, nil
}

type fakeDoctors struct {
	update func(doctorID string, upd doctor.ScheduleUpdate) (*doctor.ScheduleEntry, error)
}

func (f *fakeDoctors) UpdateAvailability(ctx context.Context, doctorID string, upd doctor.ScheduleUpdate) (*doctor.ScheduleEntry, error) {
	return f.update(doctorID, upd)
}

func (f *fakeDoctors) List(ctx context.Context) ([]doctor.Doctor, error) {
	return nil, nil
}

type fakeNotifications struct {
	send func(patientID, message string) (*notification.Notification, error)
}

func (f *fakeNotifications) Send(ctx context.Context, patientID, message string) (*notification.Notification, error) {
	return f.send(patientID, message)
}

func (f *fakeNotifications) ListByPatient(ctx context.Context, patientID string, limit int) ([]notification.Notification, error) {
	return nil, nil
}

func newTestRouter(b BookingService, d DoctorService, n NotificationService) http.Handler {
	return NewRouter(RouterConfig{
		Bookings:      b,
		Doctors:       d,
		Notifications: n,
		Logger:        zerolog.Nop(),
		Env:           "test",
		Version:       "test",
	})
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBookEndpoint_Success(t *testing.T) {
	now := time.Now()
	bookings := &fakeBookings{
		book: func(patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error) {
			return &appointment.Appointment{
				ID:        "APT123",
				PatientID: patientID,
				DoctorID:  doctorID,
				DateTime:  dateTime,
				Status:    appointment.StatusConfirmed,
				BookedAt:  now,
			}, nil
		},
	}
	router := newTestRouter(bookings, &fakeDoctors{}, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPost, "/api/appointments/book", map[string]string{
		"patientId": "P1",
		"doctorId":  "D1",
		"dateTime":  "2999-01-01T09:00:00Z",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp BookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.AppointmentID == nil || *resp.AppointmentID != "APT123" {
		t.Errorf("unexpected appointmentId: %+v", resp.AppointmentID)
	}
	if resp.Appointment == nil || resp.Appointment.Status != "confirmed" {
		t.Errorf("unexpected appointment payload: %+v", resp.Appointment)
	}
	if resp.Appointment.QueueNumber != nil {
		t.Errorf("expected null queueNumber, got %v", *resp.Appointment.QueueNumber)
	}
}

func TestBookEndpoint_MissingFields(t *testing.T) {
	bookings := &fakeBookings{
		book: func(patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	router := newTestRouter(bookings, &fakeDoctors{}, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPost, "/api/appointments/book", map[string]string{
		"patientId": "P1",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp BookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Message != "Missing required fields: patientId, doctorId, or dateTime" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.AppointmentID != nil {
		t.Errorf("expected null appointmentId, got %v", *resp.AppointmentID)
	}
}

func TestBookEndpoint_PastTimeFails(t *testing.T) {
	bookings := &fakeBookings{
		book: func(patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error) {
			return nil, appointment.ErrPastDateTime
		},
	}
	router := newTestRouter(bookings, &fakeDoctors{}, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPost, "/api/appointments/book", map[string]string{
		"patientId": "P1",
		"doctorId":  "D1",
		"dateTime":  "2001-01-01T09:00:00Z",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp BookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Message != "Appointment time must be in the future" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestCheckInEndpoint_AlreadyCheckedIn(t *testing.T) {
	bookings := &fakeBookings{
		checkIn: func(id string) (*appointment.Appointment, error) {
			return nil, appointment.ErrAlreadyCheckedIn
		},
	}
	router := newTestRouter(bookings, &fakeDoctors{}, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPost, "/api/appointments/APT123/checkin", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp CheckInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Message != "Patient is already checked in" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Status == nil || *resp.Status != "already-checked-in" {
		t.Errorf("unexpected status %+v", resp.Status)
	}
}

func TestAvailabilityEndpoint_IncompleteSchedule(t *testing.T) {
	doctors := &fakeDoctors{
		update: func(doctorID string, upd doctor.ScheduleUpdate) (*doctor.ScheduleEntry, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	router := newTestRouter(&fakeBookings{}, doctors, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPut, "/api/doctors/DOC001/availability", map[string]any{
		"date":      "2026-09-15",
		"startTime": "09:00",
		// endTime and available missing
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp AvailabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Message != "Schedule must include: date, startTime, endTime, available" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAvailabilityEndpoint_AvailableFalseIsValid(t *testing.T) {
	var got doctor.ScheduleUpdate
	doctors := &fakeDoctors{
		update: func(doctorID string, upd doctor.ScheduleUpdate) (*doctor.ScheduleEntry, error) {
			got = upd
			return &doctor.ScheduleEntry{
				Date:      upd.Date,
				StartTime: upd.StartTime,
				EndTime:   upd.EndTime,
				Available: upd.Available,
				UpdatedAt: time.Now(),
			}, nil
		},
	}
	router := newTestRouter(&fakeBookings{}, doctors, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodPut, "/api/doctors/DOC001/availability", map[string]any{
		"date":      "2026-09-15",
		"startTime": "09:00",
		"endTime":   "17:00",
		"available": false,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Available {
		t.Error("expected available=false to be passed through")
	}
}

func TestSendNotificationEndpoint_EmptyMessage(t *testing.T) {
	notifications := &fakeNotifications{
		send: func(patientID, message string) (*notification.Notification, error) {
			return nil, notification.ErrEmptyMessage
		},
	}
	router := newTestRouter(&fakeBookings{}, &fakeDoctors{}, notifications)

	rec := doRequest(t, router, http.MethodPost, "/api/notifications/send", map[string]string{
		"patientId": "P1",
		"message":   "  ",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp SendNotificationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Message != "Notification message cannot be empty" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.NotificationID != nil {
		t.Errorf("expected null notificationId, got %v", *resp.NotificationID)
	}
}

func TestQueueBoardEndpoint(t *testing.T) {
	router := newTestRouter(&fakeBookings{}, &fakeDoctors{}, &fakeNotifications{})

	rec := doRequest(t, router, http.MethodGet, "/api/queue", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp QueueBoardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.Queue == nil {
		t.Error("expected an empty queue array, got null")
	}
}
