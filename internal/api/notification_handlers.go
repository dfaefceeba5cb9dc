package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medqueue/medqueue-backend/internal/notification"
)

func sendNotificationHandler(svc NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(message string) {
			writeJSON(w, failureStatus, SendNotificationResponse{Success: false, Message: message})
		}

		var req SendNotificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail("Request body must be valid JSON")
			return
		}
		if err := validate.Struct(req); err != nil {
			fail(notification.ErrPatientIDRequired.Error())
			return
		}

		n, err := svc.Send(r.Context(), req.PatientID, req.Message)
		if err != nil {
			fail(err.Error())
			return
		}

		method := string(n.DeliveryMethod)
		writeJSON(w, http.StatusOK, SendNotificationResponse{
			Success:             true,
			Message:             "Notification sent successfully",
			NotificationID:      &n.ID,
			PatientID:           &n.PatientID,
			NotificationMessage: &n.Message,
			SentAt:              &n.SentAt,
			DeliveryMethod:      &method,
		})
	}
}

func listPatientNotificationsHandler(svc NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientId")
		limit := queryInt(r, "limit", 50)

		list, err := svc.ListByPatient(r.Context(), patientID, limit)
		if err != nil {
			writeJSON(w, failureStatus, ListNotificationsResponse{Success: false, Message: err.Error()})
			return
		}

		payloads := make([]NotificationPayload, 0, len(list))
		for _, n := range list {
			payloads = append(payloads, notificationPayload(n))
		}

		writeJSON(w, http.StatusOK, ListNotificationsResponse{
			Success:       true,
			Message:       "Notifications retrieved successfully",
			Notifications: payloads,
		})
	}
}
