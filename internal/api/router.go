package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/doctor"
	"github.com/medqueue/medqueue-backend/internal/notification"
)

var validate = validator.New()

// BookingService is the appointment lifecycle surface the handlers need.
type BookingService interface {
	Book(ctx context.Context, patientID, doctorID string, dateTime time.Time) (*appointment.Appointment, error)
	Cancel(ctx context.Context, id string) (*appointment.Appointment, error)
	Modify(ctx context.Context, id string, newDateTime time.Time) (*appointment.Appointment, error)
	AssignQueueNumber(ctx context.Context, id string) (*appointment.QueueAssignment, error)
	CheckIn(ctx context.Context, id string) (*appointment.Appointment, error)
	Get(ctx context.Context, id string) (*appointment.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]appointment.Appointment, error)
	TodayQueue(ctx context.Context) ([]appointment.QueueEntry, error)
}

type DoctorService interface {
	UpdateAvailability(ctx context.Context, doctorID string, upd doctor.ScheduleUpdate) (*doctor.ScheduleEntry, error)
	List(ctx context.Context) ([]doctor.Doctor, error)
}

type NotificationService interface {
	Send(ctx context.Context, patientID, message string) (*notification.Notification, error)
	ListByPatient(ctx context.Context, patientID string, limit int) ([]notification.Notification, error)
}

type RouterConfig struct {
	Bookings      BookingService
	Doctors       DoctorService
	Notifications NotificationService
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	Logger        zerolog.Logger
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/book", bookAppointmentHandler(cfg.Bookings))
			r.Get("/{appointmentId}", getAppointmentHandler(cfg.Bookings))
			r.Delete("/{appointmentId}/cancel", cancelAppointmentHandler(cfg.Bookings))
			r.Put("/{appointmentId}/modify", modifyAppointmentHandler(cfg.Bookings))
			r.Post("/{appointmentId}/queue", assignQueueNumberHandler(cfg.Bookings))
			r.Post("/{appointmentId}/checkin", checkInHandler(cfg.Bookings))
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", listDoctorsHandler(cfg.Doctors))
			r.Put("/{doctorId}/availability", updateAvailabilityHandler(cfg.Doctors))
		})

		r.Route("/patients/{patientId}", func(r chi.Router) {
			r.Get("/appointments", listPatientAppointmentsHandler(cfg.Bookings))
			r.Get("/notifications", listPatientNotificationsHandler(cfg.Notifications))
		})

		r.Get("/queue", queueBoardHandler(cfg.Bookings))
		r.Post("/notifications/send", sendNotificationHandler(cfg.Notifications))
	})

	return r
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
