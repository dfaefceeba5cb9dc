package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeRepo struct {
	created []Notification
}

func (r *fakeRepo) Create(ctx context.Context, n *Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]Notification, error) {
	var result []Notification
	for _, n := range r.created {
		if n.PatientID == patientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func TestSend_RequiresPatientID(t *testing.T) {
	svc := NewService(&fakeRepo{}, zerolog.Nop())

	_, err := svc.Send(context.Background(), "", "hello")
	if !errors.Is(err, ErrPatientIDRequired) {
		t.Fatalf("expected ErrPatientIDRequired, got %v", err)
	}
}

func TestSend_RejectsWhitespaceMessage(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Send(context.Background(), "P1", "  ")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if err.Error() != "Notification message cannot be empty" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if len(repo.created) != 0 {
		t.Errorf("expected no record created, got %d", len(repo.created))
	}
}

func TestSend_TrimsAndDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	n, err := svc.Send(context.Background(), "P1", "  your appointment is tomorrow  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n.Message != "your appointment is tomorrow" {
		t.Errorf("expected trimmed message, got %q", n.Message)
	}
	if !strings.HasPrefix(n.ID, "NOT") {
		t.Errorf("expected NOT id prefix, got %s", n.ID)
	}
	if n.Type != TypeGeneral {
		t.Errorf("expected type general, got %s", n.Type)
	}
	if n.DeliveryMethod != DeliveryConsole {
		t.Errorf("expected console delivery, got %s", n.DeliveryMethod)
	}
	if n.Status != StatusSent {
		t.Errorf("expected status sent, got %s", n.Status)
	}
	if n.SentAt.IsZero() {
		t.Error("expected sent_at to be set")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one record created, got %d", len(repo.created))
	}
}

func TestNotify_DelegatesToSend(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	if err := svc.Notify(context.Background(), "P1", "reminder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one record created, got %d", len(repo.created))
	}

	if err := svc.Notify(context.Background(), "P1", "   "); err == nil {
		t.Fatal("expected empty message to fail")
	}
}
