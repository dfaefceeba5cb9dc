package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medqueue/medqueue-backend/internal/appointment"
)

func bookAppointmentHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(message string) {
			writeJSON(w, failureStatus, BookResponse{Success: false, Message: message})
		}

		var req BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail("Request body must be valid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(appointment.ErrMissingBookingFields.Error())
			return
		}

		dateTime, err := time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			fail("dateTime must be an ISO-8601 timestamp")
			return
		}

		appt, err := svc.Book(r.Context(), req.PatientID, req.DoctorID, dateTime)
		if err != nil {
			fail(err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, BookResponse{
			Success:       true,
			Message:       "Appointment booked successfully",
			AppointmentID: &appt.ID,
			Appointment:   appointmentPayload(appt),
		})
	}
}

func cancelAppointmentHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")

		appt, err := svc.Cancel(r.Context(), id)
		if err != nil {
			writeJSON(w, failureStatus, CancelResponse{Success: false, Message: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, CancelResponse{
			Success:       true,
			Message:       "Appointment cancelled successfully",
			AppointmentID: &appt.ID,
			CancelledAt:   appt.CancelledAt,
		})
	}
}

func modifyAppointmentHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")

		fail := func(message string) {
			writeJSON(w, failureStatus, ModifyResponse{Success: false, Message: message})
		}

		var req ModifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail("Request body must be valid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(appointment.ErrMissingModifyFields.Error())
			return
		}

		newDateTime, err := time.Parse(time.RFC3339, req.NewDateTime)
		if err != nil {
			fail("newDateTime must be an ISO-8601 timestamp")
			return
		}

		appt, err := svc.Modify(r.Context(), id, newDateTime)
		if err != nil {
			fail(err.Error())
			return
		}

		writeJSON(w, http.StatusOK, ModifyResponse{
			Success:       true,
			Message:       "Appointment modified successfully",
			AppointmentID: &appt.ID,
			NewDateTime:   &appt.DateTime,
			ModifiedAt:    appt.ModifiedAt,
		})
	}
}

func assignQueueNumberHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")

		qa, err := svc.AssignQueueNumber(r.Context(), id)
		if err != nil {
			writeJSON(w, failureStatus, QueueNumberResponse{Success: false, Message: err.Error()})
			return
		}

		message := "Queue number generated successfully"
		if qa.AlreadyAssigned {
			message = "Queue number already exists"
		}

		writeJSON(w, http.StatusOK, QueueNumberResponse{
			Success:       true,
			Message:       message,
			QueueNumber:   &qa.QueueNumber,
			AppointmentID: &qa.AppointmentID,
			GeneratedAt:   &qa.GeneratedAt,
		})
	}
}

func checkInHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")

		appt, err := svc.CheckIn(r.Context(), id)
		if err != nil {
			resp := CheckInResponse{Success: false, Message: err.Error()}
			if errors.Is(err, appointment.ErrAlreadyCheckedIn) {
				status := "already-checked-in"
				resp.Status = &status
			}
			writeJSON(w, failureStatus, resp)
			return
		}

		status := "checked-in"
		writeJSON(w, http.StatusOK, CheckInResponse{
			Success:       true,
			Message:       "Patient checked in successfully",
			Status:        &status,
			AppointmentID: &appt.ID,
			QueueNumber:   &appt.QueueNumber,
			CheckedInAt:   appt.CheckedInAt,
		})
	}
}

func getAppointmentHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentId")

		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			writeJSON(w, failureStatus, GetAppointmentResponse{Success: false, Message: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, GetAppointmentResponse{
			Success:     true,
			Message:     "Appointment found",
			Appointment: appointmentPayload(appt),
		})
	}
}

func listPatientAppointmentsHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientId")
		limit := queryInt(r, "limit", 20)
		offset := queryInt(r, "offset", 0)

		appts, err := svc.ListByPatient(r.Context(), patientID, limit, offset)
		if err != nil {
			writeJSON(w, failureStatus, ListAppointmentsResponse{Success: false, Message: err.Error()})
			return
		}

		payloads := make([]AppointmentPayload, 0, len(appts))
		for i := range appts {
			payloads = append(payloads, *appointmentPayload(&appts[i]))
		}

		writeJSON(w, http.StatusOK, ListAppointmentsResponse{
			Success:      true,
			Message:      "Appointments retrieved successfully",
			Appointments: payloads,
		})
	}
}

func queueBoardHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.TodayQueue(r.Context())
		if err != nil {
			writeJSON(w, failureStatus, QueueBoardResponse{Success: false, Message: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, QueueBoardResponse{
			Success: true,
			Message: "Queue retrieved successfully",
			Date:    time.Now().Format("2006-01-02"),
			Queue:   entries,
		})
	}
}
