package notification

import (
	"fmt"
	"math/rand"
	"time"
)

type Type string

const (
	TypeConfirmation Type = "appointment_confirmation"
	TypeReminder     Type = "reminder"
	TypeCancellation Type = "cancellation"
	TypeQueueUpdate  Type = "queue_update"
	TypeGeneral      Type = "general"
)

type DeliveryMethod string

const (
	// DeliveryConsole only logs the message. The only method this
	// implementation actually performs.
	DeliveryConsole DeliveryMethod = "console"
	DeliveryEmail   DeliveryMethod = "email"
	DeliverySMS     DeliveryMethod = "sms"
	DeliveryPush    DeliveryMethod = "push"
)

type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
)

// Notification is an immutable record of a message sent to a patient.
type Notification struct {
	ID             string
	PatientID      string
	Message        string
	Type           Type
	DeliveryMethod DeliveryMethod
	Status         DeliveryStatus
	SentAt         time.Time
}

// NewNotificationID returns an ID of the form NOT<unix-millis><3-digit random>.
func NewNotificationID() string {
	return fmt.Sprintf("NOT%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
