package checkout

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courtbook/internal/domain/discount"
	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
)

type Service struct {
	db           *gorm.DB
	carrier      Carrier
	courses      CourseReader
	discounts    DiscountCatalog
	reservations ReservationStore
	payments     PaymentStore
	wallet       WalletDebiter
	maxPerSlot   int
}

func NewService(
	db *gorm.DB,
	carrier Carrier,
	courses CourseReader,
	discounts DiscountCatalog,
	reservations ReservationStore,
	payments PaymentStore,
	wallet WalletDebiter,
	maxPerSlot int,
) *Service {
	return &Service{
		db:           db,
		carrier:      carrier,
		courses:      courses,
		discounts:    discounts,
		reservations: reservations,
		payments:     payments,
		wallet:       wallet,
		maxPerSlot:   maxPerSlot,
	}
}

// Begin parks a freshly built draft in the carrier, replacing any
// previous in-flight checkout for the member.
func (s *Service) Begin(ctx context.Context, memberEmail string, draft *reservation.Draft, lines []reservation.DraftLine) error {
	return s.carrier.Save(ctx, memberEmail, NewCheckout(draft, lines))
}

// Quote prices the in-flight checkout: per-unit price, subtotal
// (price x count), gross total (subtotal x slots) and the discounted
// total if a code is attached.
func (s *Service) Quote(ctx context.Context, memberEmail string) (*Quote, error) {
	ck, err := s.carrier.Load(ctx, memberEmail)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, ck)
}

func (s *Service) quote(ctx context.Context, ck *Checkout) (*Quote, error) {
	course, err := s.courses.GetByID(ctx, ck.Draft.CourseID)
	if err != nil {
		return nil, err
	}

	subTotal, total := s.totals(course.Price, ck)

	times := make([]string, 0, len(ck.Lines))
	for _, l := range ck.Lines {
		times = append(times, l.Time)
	}

	return &Quote{
		State:       ck.State,
		CourseID:    ck.Draft.CourseID,
		CourseType:  ck.Draft.CourseType,
		Date:        ck.Draft.Date,
		Times:       times,
		CourseCount: ck.Draft.CourseCount,
		Price:       course.Price,
		SubTotal:    subTotal,
		Total:       total,
		Discount:    ck.Discount,
	}, nil
}

// totals: SubTotal = Price x CourseCount, gross = SubTotal x slots,
// percentage discounts multiply by (1 - value), fixed amounts subtract
// with a floor at zero.
func (s *Service) totals(price decimal.Decimal, ck *Checkout) (subTotal, total decimal.Decimal) {
	subTotal = price.Mul(decimal.NewFromInt(int64(ck.Draft.CourseCount)))
	total = subTotal.Mul(decimal.NewFromInt(int64(len(ck.Lines))))

	if d := ck.Discount; d != nil {
		switch d.DiscountType {
		case discount.TypePercentage:
			total = total.Mul(decimal.NewFromInt(1).Sub(d.DiscountValue))
		case discount.TypeFixedAmount:
			total = total.Sub(d.DiscountValue)
			if total.IsNegative() {
				total = decimal.Zero
			}
		}
	}
	return subTotal.Round(2), total.Round(2)
}

// ApplyDiscount looks the code up (exact, case-sensitive), checks
// active/limit status and attaches the discount to the in-flight
// checkout. Durable usage counts are untouched until confirmation, so
// re-applying before confirmation is idempotent.
func (s *Service) ApplyDiscount(ctx context.Context, memberEmail, code string) (*discount.Discount, error) {
	ck, err := s.carrier.Load(ctx, memberEmail)
	if err != nil {
		return nil, err
	}

	d, err := s.discounts.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, discount.ErrDiscountNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}

	if !d.IsActive {
		return nil, ErrDiscountInactive
	}
	if d.LimitReached() {
		return nil, ErrDiscountLimitReached
	}

	if err := ck.AttachDiscount(d); err != nil {
		return nil, err
	}
	if err := s.carrier.Save(ctx, memberEmail, ck); err != nil {
		return nil, err
	}
	return d, nil
}

// SelectPaymentMethod validates the chosen method and advances the
// checkout to awaiting-payment. Method fields are never stored in the
// carrier; the client re-submits them at confirmation.
func (s *Service) SelectPaymentMethod(ctx context.Context, memberEmail string, m Method) (*Quote, error) {
	ck, err := s.carrier.Load(ctx, memberEmail)
	if err != nil {
		return nil, err
	}
	if err := ck.AwaitPayment(); err != nil {
		return nil, err
	}
	if err := s.carrier.Save(ctx, memberEmail, ck); err != nil {
		return nil, err
	}
	return s.quote(ctx, ck)
}

// Confirm turns the in-flight checkout into durable records in one
// transaction: capacity re-check under lock, wallet debit (EWallet
// only), payment id allocation, discount usage increment against the
// re-fetched row, reservation + lines + payment insert. Any failure
// rolls everything back and leaves the carrier untouched so the
// member can retry.
func (s *Service) Confirm(ctx context.Context, memberEmail string, m Method) (*ConfirmResponse, error) {
	if m == nil {
		return nil, ErrNoPaymentMethod
	}

	ck, err := s.carrier.Load(ctx, memberEmail)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, ck.Draft.CourseID)
	if err != nil {
		return nil, err
	}
	subTotal, total := s.totals(course.Price, ck)

	res := reservation.Reservation{
		CourseType:  ck.Draft.CourseType,
		CourseID:    ck.Draft.CourseID,
		Date:        ck.Draft.Date,
		CourseCount: ck.Draft.CourseCount,
		MemberEmail: memberEmail,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check every slot inside the transaction; the builder's
		// earlier check is advisory only.
		for _, line := range ck.Lines {
			booked, err := s.reservations.BookedUnitsTx(tx, ck.Draft.CourseType, ck.Draft.Date, line.Time)
			if err != nil {
				return err
			}
			remaining := s.maxPerSlot - booked
			if ck.Draft.CourseCount > remaining {
				return &CapacityError{Time: line.Time, Remaining: remaining}
			}
		}

		if _, ok := m.(EWallet); ok {
			if _, err := s.wallet.DebitTx(tx, memberEmail, total); err != nil {
				return err
			}
		}

		paymentID, err := s.payments.NextIDTx(tx)
		if err != nil {
			return err
		}

		pay := payment.Payment{
			PaymentID: paymentID,
			Price:     subTotal,
			Total:     total,
		}

		if ck.Discount != nil {
			d, err := s.discounts.GetByIDForUpdateTx(tx, ck.Discount.DiscountID)
			if err != nil {
				return err
			}
			if err := s.discounts.IncrementUsageTx(tx, d.DiscountID); err != nil {
				return err
			}
			pay.DiscountID = &d.DiscountID
			res.DiscountType = &d.DiscountType
			v := d.DiscountValue
			res.DiscountValue = &v
		}

		res.PaymentID = paymentID

		lines := make([]reservation.ReservationLine, 0, len(ck.Lines))
		for _, l := range ck.Lines {
			lines = append(lines, reservation.ReservationLine{
				Time:     l.Time,
				SubTotal: subTotal,
			})
		}
		if err := s.reservations.CreateTx(tx, &res, lines); err != nil {
			return err
		}
		return s.payments.CreateTx(tx, &pay)
	})
	if err != nil {
		return nil, err
	}

	// The draft has become durable; the transient copy is done.
	if err := s.carrier.Clear(ctx, memberEmail); err != nil {
		return nil, err
	}

	return &ConfirmResponse{ReservationID: res.ReservationID, PaymentID: res.PaymentID}, nil
}
