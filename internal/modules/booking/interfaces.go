package booking

import (
	"context"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/reservation"
)

// ReservationReader exposes the persisted-line aggregation the
// capacity check runs on.
type ReservationReader interface {
	BookedUnits(ctx context.Context, courseType, date, timeOfDay string) (int, error)
}

// CourseReader resolves the course being booked.
type CourseReader interface {
	GetByID(ctx context.Context, courseID string) (*catalog.Course, error)
}

// CheckoutStarter receives the freshly built draft. Implemented by the
// checkout module's carrier-backed service.
type CheckoutStarter interface {
	Begin(ctx context.Context, memberEmail string, draft *reservation.Draft, lines []reservation.DraftLine) error
}
