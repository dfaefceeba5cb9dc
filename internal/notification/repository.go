package notification

import (
	"context"
)

// Repository persists notification records. Notifications are append-only.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByPatient(ctx context.Context, patientID string, limit int) ([]Notification, error)
}
