package appointment

import (
	"fmt"
	"math/rand"
	"time"
)

// NewAppointmentID returns an ID of the form APT<unix-nanos><3-digit random>.
// Collisions are possible in principle but practically unlikely; uniqueness is
// not actively enforced here, the primary key constraint is the backstop.
func NewAppointmentID() string {
	return fmt.Sprintf("APT%d%03d", time.Now().UnixNano(), rand.Intn(1000))
}

// NewQueueNumber returns Q + zero-padded day of month + zero-padded random
// number in [1,99]. Numbers are not checked for uniqueness across the day's
// appointments.
func NewQueueNumber(now time.Time) string {
	return fmt.Sprintf("Q%02d%02d", now.Day(), rand.Intn(99)+1)
}
