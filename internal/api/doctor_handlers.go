package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medqueue/medqueue-backend/internal/doctor"
)

func updateAvailabilityHandler(svc DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := chi.URLParam(r, "doctorId")

		fail := func(message string) {
			writeJSON(w, failureStatus, AvailabilityResponse{Success: false, Message: message})
		}

		var req AvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(doctor.ErrScheduleRequired.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(doctor.ErrScheduleIncomplete.Error())
			return
		}

		entry, err := svc.UpdateAvailability(r.Context(), doctorID, doctor.ScheduleUpdate{
			Date:      *req.Date,
			StartTime: *req.StartTime,
			EndTime:   *req.EndTime,
			Available: *req.Available,
		})
		if err != nil {
			fail(err.Error())
			return
		}

		writeJSON(w, http.StatusOK, AvailabilityResponse{
			Success:   true,
			Message:   "Doctor availability updated successfully",
			DoctorID:  &doctorID,
			Schedule:  entry,
			UpdatedAt: &entry.UpdatedAt,
		})
	}
}

func listDoctorsHandler(svc DoctorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, failureStatus, ListDoctorsResponse{Success: false, Message: err.Error()})
			return
		}

		payloads := make([]DoctorPayload, 0, len(docs))
		for _, d := range docs {
			payloads = append(payloads, DoctorPayload{
				DoctorID:       d.DoctorID,
				Name:           d.Name,
				Specialization: d.Specialization,
				Schedules:      d.Schedules,
			})
		}

		writeJSON(w, http.StatusOK, ListDoctorsResponse{
			Success: true,
			Message: "Doctors retrieved successfully",
			Doctors: payloads,
		})
	}
}
