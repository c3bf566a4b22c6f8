package history

import (
	"context"
	"log"
)

// Mailer delivers a rendered receipt. The core only supplies the data
// and the trigger; rendering and transport live behind this interface.
type Mailer interface {
	SendReceipt(ctx context.Context, email string, receipt *Receipt) error
}

// DevConsoleMailer logs instead of sending. Used outside production.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendReceipt(_ context.Context, email string, receipt *Receipt) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] receipt email=%s reservation_id=%d total=%s", email, receipt.ReservationID, receipt.Total)
	}
	return nil
}
