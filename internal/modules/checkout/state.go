package checkout

import (
	"courtbook/internal/domain/discount"
	"courtbook/internal/domain/reservation"
)

type State string

const (
	StateBuilding        State = "building"
	StateDiscountApplied State = "discount_applied"
	StateAwaitingPayment State = "awaiting_payment"
	StateConfirmed       State = "confirmed"
)

// Checkout is the in-flight state ferried between requests. It holds
// plain serializable data only; the discount is a snapshot and the
// confirmer always re-fetches the durable row before mutating it.
type Checkout struct {
	State    State                   `json:"state"`
	Draft    reservation.Draft       `json:"draft"`
	Lines    []reservation.DraftLine `json:"lines"`
	Discount *discount.Discount      `json:"discount,omitempty"`
}

func NewCheckout(draft *reservation.Draft, lines []reservation.DraftLine) *Checkout {
	return &Checkout{
		State: StateBuilding,
		Draft: *draft,
		Lines: lines,
	}
}

// AttachDiscount stores the discount snapshot. Allowed any time before
// confirmation; re-applying overwrites the previous snapshot without
// touching durable usage counts.
func (c *Checkout) AttachDiscount(d *discount.Discount) error {
	if c.State == StateConfirmed {
		return ErrInvalidTransition
	}
	c.Discount = d
	c.State = StateDiscountApplied
	return nil
}

// AwaitPayment marks the member as having reached payment selection.
func (c *Checkout) AwaitPayment() error {
	if c.State == StateConfirmed {
		return ErrInvalidTransition
	}
	c.State = StateAwaitingPayment
	return nil
}

// MarkConfirmed closes the checkout; no further transitions.
func (c *Checkout) MarkConfirmed() error {
	if c.State == StateConfirmed {
		return ErrInvalidTransition
	}
	c.State = StateConfirmed
	c.Discount = nil
	return nil
}
