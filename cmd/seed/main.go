package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/config"
	"github.com/medqueue/medqueue-backend/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := db.ConnectPostgres(context.Background(), cfg)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedDoctors(context.Background(), pool, 25)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, doctorIDs, 500); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]string, error) {
	log.Printf("seeding %d doctors", count)

	specializations := []string{
		"General Medicine",
		"Dermatology",
		"Cardiology",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		doctorID := fmt.Sprintf("DOC%03d", i+1)
		name := "Dr. " + gofakeit.Name()
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (doctor_id, name, specialization, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT (doctor_id) DO NOTHING
		`, doctorID, name, spec)
		if err != nil {
			return nil, err
		}

		// Publish availability for the next five weekdays.
		day := time.Now()
		for published := 0; published < 5; {
			day = day.AddDate(0, 0, 1)
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO doctor_schedules (doctor_id, date, start_time, end_time, available, updated_at)
				VALUES ($1, $2, $3, $4, $5, now())
				ON CONFLICT (doctor_id, date) DO NOTHING
			`, doctorID, day.Format("2006-01-02"), "09:00", "17:00", gofakeit.Number(0, 9) > 0)
			if err != nil {
				return nil, err
			}
			published++
		}

		ids = append(ids, doctorID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, doctorIDs []string, count int) error {
	log.Printf("seeding %d appointments", count)

	const batchSize = 100

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := appointment.NewAppointmentID()
			patientID := fmt.Sprintf("PAT%05d", gofakeit.Number(1, 2000))
			doctorID := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
			dateTime := time.Now().Add(time.Duration(gofakeit.Number(1, 14*24)) * time.Hour)

			_, err := tx.Exec(ctx, `
				INSERT INTO appointments (
					id, patient_id, doctor_id, date_time, status,
					checked_in, booked_at, created_at, updated_at
				)
				VALUES ($1, $2, $3, $4, 'confirmed', false, now(), now(), now())
			`, id, patientID, doctorID, dateTime)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("appointments seeded: %d/%d", end, count)
	}

	log.Println("appointments seeded")
	return nil
}
