package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const appointmentColumns = `
	id, patient_id, doctor_id, date_time, status, queue_number,
	checked_in, checked_in_at, booked_at, modified_at, cancelled_at,
	created_at, updated_at
`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var queueNumber *string

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.DateTime,
		&a.Status,
		&queueNumber,
		&a.CheckedIn,
		&a.CheckedInAt,
		&a.BookedAt,
		&a.ModifiedAt,
		&a.CancelledAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if queueNumber != nil {
		a.QueueNumber = *queueNumber
	}
	return &a, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) Create(ctx context.Context, appt *Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (
			id, patient_id, doctor_id, date_time, status, queue_number,
			checked_in, checked_in_at, booked_at, modified_at, cancelled_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING `+appointmentColumns+`
	`, appt.ID, appt.PatientID, appt.DoctorID, appt.DateTime, appt.Status,
		nullableString(appt.QueueNumber), appt.CheckedIn, appt.CheckedInAt,
		appt.BookedAt, appt.ModifiedAt, appt.CancelledAt)

	created, err := scanAppointment(row)
	if err != nil {
		return err
	}
	*appt = *created
	return nil
}

func (r *PgRepository) Update(ctx context.Context, appt *Appointment) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET date_time = $2,
		    status = $3,
		    queue_number = $4,
		    checked_in = $5,
		    checked_in_at = $6,
		    modified_at = $7,
		    cancelled_at = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+appointmentColumns+`
	`, appt.ID, appt.DateTime, appt.Status, nullableString(appt.QueueNumber),
		appt.CheckedIn, appt.CheckedInAt, appt.ModifiedAt, appt.CancelledAt)

	updated, err := scanAppointment(row)
	if err != nil {
		return err
	}
	*appt = *updated
	return nil
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date_time DESC
		LIMIT $2 OFFSET $3
	`, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListCheckedInBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE checked_in = true
		  AND checked_in_at >= $1
		  AND checked_in_at < $2
		ORDER BY checked_in_at ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) FindOverdueConfirmed(ctx context.Context, before time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE status = 'confirmed'
		  AND date_time < $1
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
