package doctor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) GetByDoctorID(ctx context.Context, doctorID string) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT doctor_id, name, specialization, created_at, updated_at
		FROM doctors
		WHERE doctor_id = $1
	`, doctorID)

	var d Doctor
	err := row.Scan(&d.DoctorID, &d.Name, &d.Specialization, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	schedules, err := r.listSchedules(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	d.Schedules = schedules

	return &d, nil
}

func (r *PgRepository) Create(ctx context.Context, doc *Doctor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (doctor_id, name, specialization, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING doctor_id, name, specialization, created_at, updated_at
	`, doc.DoctorID, doc.Name, doc.Specialization)

	return row.Scan(&doc.DoctorID, &doc.Name, &doc.Specialization, &doc.CreatedAt, &doc.UpdatedAt)
}

// UpsertSchedule relies on the UNIQUE(doctor_id, date) constraint: a conflict
// overwrites the existing row, keeping its position, otherwise a new row
// appends after all earlier entries.
func (r *PgRepository) UpsertSchedule(ctx context.Context, doctorID string, entry ScheduleEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor_schedules (doctor_id, date, start_time, end_time, available, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (doctor_id, date) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    available = EXCLUDED.available,
		    updated_at = EXCLUDED.updated_at
	`, doctorID, entry.Date, entry.StartTime, entry.EndTime, entry.Available, entry.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE doctors SET updated_at = now() WHERE doctor_id = $1
	`, doctorID)
	return err
}

func (r *PgRepository) List(ctx context.Context) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT doctor_id, name, specialization, created_at, updated_at
		FROM doctors
		ORDER BY doctor_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.DoctorID, &d.Name, &d.Specialization, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		schedules, err := r.listSchedules(ctx, result[i].DoctorID)
		if err != nil {
			return nil, err
		}
		result[i].Schedules = schedules
	}

	return result, nil
}

func (r *PgRepository) listSchedules(ctx context.Context, doctorID string) ([]ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date, start_time, end_time, available, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY position ASC
	`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []ScheduleEntry
	for rows.Next() {
		var s ScheduleEntry
		if err := rows.Scan(&s.Date, &s.StartTime, &s.EndTime, &s.Available, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}
