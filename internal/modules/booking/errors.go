package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNoTimesSelected      = errors.New("no times selected")
	ErrUnknownSlot          = errors.New("unknown time slot")
	ErrExpiredSlot          = errors.New("expired slot")
	ErrSlotFull             = errors.New("slot full")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrCourseInactive       = errors.New("course is not active")
)

// SlotError names the offending slot so callers can surface the
// failure per-slot. It wraps one of the sentinels above.
type SlotError struct {
	Time      string
	Remaining int
	Err       error
}

func (e *SlotError) Error() string {
	switch {
	case errors.Is(e.Err, ErrSlotFull):
		return fmt.Sprintf("time slot %s is fully booked", e.Time)
	case errors.Is(e.Err, ErrInsufficientCapacity):
		return fmt.Sprintf("only %d court(s) left at %s", e.Remaining, e.Time)
	case errors.Is(e.Err, ErrExpiredSlot):
		return fmt.Sprintf("time slot %s is expired", e.Time)
	default:
		return fmt.Sprintf("time slot %s: %v", e.Time, e.Err)
	}
}

func (e *SlotError) Unwrap() error { return e.Err }
