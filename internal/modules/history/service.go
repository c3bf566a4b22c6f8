package history

import (
	"context"
	"errors"

	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
)

var ErrNotOwner = errors.New("reservation belongs to another member")

type Service struct {
	reservations *reservation.Repository
	payments     *payment.Repository
	mailer       Mailer
}

func NewService(reservations *reservation.Repository, payments *payment.Repository, mailer Mailer) *Service {
	return &Service{reservations: reservations, payments: payments, mailer: mailer}
}

func (s *Service) ListByMember(ctx context.Context, memberEmail string) ([]reservation.Reservation, error) {
	return s.reservations.ListByMember(ctx, memberEmail)
}

// Receipt assembles the e-receipt for one reservation. Members can only
// read their own.
func (s *Service) Receipt(ctx context.Context, memberEmail string, reservationID int64) (*Receipt, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.MemberEmail != memberEmail {
		return nil, ErrNotOwner
	}

	lines, err := s.reservations.GetLines(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	pay, err := s.payments.GetByID(ctx, res.PaymentID)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		ReservationID: res.ReservationID,
		CourseType:    res.CourseType,
		Date:          res.Date,
		CourseCount:   res.CourseCount,
		Price:         pay.Price,
		DiscountType:  res.DiscountType,
		DiscountValue: res.DiscountValue,
		Total:         pay.Total,
		PaymentID:     pay.PaymentID,
	}
	for _, line := range lines {
		receipt.Times = append(receipt.Times, line.Time)
		receipt.SubTotals = append(receipt.SubTotals, line.SubTotal)
	}
	return receipt, nil
}

// SendReceipt mails the receipt to the given address, which does not
// have to be the member's login email.
func (s *Service) SendReceipt(ctx context.Context, memberEmail string, reservationID int64, email string) error {
	receipt, err := s.Receipt(ctx, memberEmail, reservationID)
	if err != nil {
		return err
	}
	return s.mailer.SendReceipt(ctx, email, receipt)
}
