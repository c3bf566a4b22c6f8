package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrStateExpired means the carrier has no usable checkout for the
	// member. Callers must restart the flow, never proceed with a
	// zero-value draft.
	ErrStateExpired      = errors.New("checkout state expired")
	ErrInvalidTransition = errors.New("invalid checkout transition")

	ErrNoPaymentMethod      = errors.New("payment method not selected")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	ErrDiscountNotFound     = errors.New("discount code not found")
	ErrDiscountInactive     = errors.New("discount code is not active")
	ErrDiscountLimitReached = errors.New("discount code usage limit reached")
)

// FieldError ties a validation failure to one input field so the
// caller can surface it inline.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CapacityError reports the confirm-time re-check losing the race for
// a slot.
type CapacityError struct {
	Time      string
	Remaining int
}

func (e *CapacityError) Error() string {
	if e.Remaining <= 0 {
		return fmt.Sprintf("time slot %s is fully booked", e.Time)
	}
	return fmt.Sprintf("only %d court(s) left at %s", e.Remaining, e.Time)
}
