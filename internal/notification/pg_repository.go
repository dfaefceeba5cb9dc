package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, n *Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, patient_id, message, type, delivery_method, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.PatientID, n.Message, n.Type, n.DeliveryMethod, n.Status, n.SentAt)
	return err
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, message, type, delivery_method, status, sent_at
		FROM notifications
		WHERE patient_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(&n.ID, &n.PatientID, &n.Message, &n.Type, &n.DeliveryMethod, &n.Status, &n.SentAt)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
