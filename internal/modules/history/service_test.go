package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
)

type captureMailer struct {
	email   string
	receipt *Receipt
}

func (m *captureMailer) SendReceipt(_ context.Context, email string, receipt *Receipt) error {
	m.email = email
	m.receipt = receipt
	return nil
}

func setupHistory(t *testing.T) (*Service, *captureMailer, int64) {
	t.Helper()
	dsn := fmt.Sprintf("file:history_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&reservation.Reservation{}, &reservation.ReservationLine{}, &payment.Payment{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	dtype := "percentage"
	dvalue := decimal.RequireFromString("0.10")
	res := reservation.Reservation{
		CourseType:    "Badminton",
		CourseID:      "C001",
		Date:          "2027-03-01",
		CourseCount:   2,
		MemberEmail:   "amy@mail.my",
		DiscountType:  &dtype,
		DiscountValue: &dvalue,
		PaymentID:     "P001",
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
	lines := []reservation.ReservationLine{
		{ReservationID: res.ReservationID, Time: "09:00", SubTotal: decimal.RequireFromString("20.00")},
		{ReservationID: res.ReservationID, Time: "14:00", SubTotal: decimal.RequireFromString("20.00")},
	}
	if err := db.Create(&lines).Error; err != nil {
		t.Fatalf("failed to create lines: %v", err)
	}
	pay := payment.Payment{
		PaymentID: "P001",
		Price:     decimal.RequireFromString("20.00"),
		Total:     decimal.RequireFromString("36.00"),
	}
	if err := db.Create(&pay).Error; err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	mailer := &captureMailer{}
	svc := NewService(reservation.NewRepository(db), payment.NewRepository(db), mailer)
	return svc, mailer, res.ReservationID
}

func TestReceiptAssemblesAllParts(t *testing.T) {
	svc, _, id := setupHistory(t)

	receipt, err := svc.Receipt(context.Background(), "amy@mail.my", id)
	if err != nil {
		t.Fatalf("Receipt returned error: %v", err)
	}

	if receipt.CourseType != "Badminton" || receipt.Date != "2027-03-01" {
		t.Fatalf("unexpected course data: %+v", receipt)
	}
	if len(receipt.Times) != 2 || receipt.Times[0] != "09:00" || receipt.Times[1] != "14:00" {
		t.Fatalf("unexpected times: %v", receipt.Times)
	}
	if !receipt.Total.Equal(decimal.RequireFromString("36.00")) {
		t.Fatalf("expected total 36.00, got %s", receipt.Total)
	}
	if receipt.DiscountType == nil || *receipt.DiscountType != "percentage" {
		t.Fatalf("expected discount snapshot, got %v", receipt.DiscountType)
	}
	if receipt.PaymentID != "P001" {
		t.Fatalf("expected payment id P001, got %s", receipt.PaymentID)
	}
}

func TestReceiptHidesOtherMembersReservations(t *testing.T) {
	svc, _, id := setupHistory(t)

	if _, err := svc.Receipt(context.Background(), "ben@mail.my", id); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestSendReceiptDeliversToGivenAddress(t *testing.T) {
	svc, mailer, id := setupHistory(t)

	if err := svc.SendReceipt(context.Background(), "amy@mail.my", id, "other@mail.my"); err != nil {
		t.Fatalf("SendReceipt returned error: %v", err)
	}
	if mailer.email != "other@mail.my" {
		t.Fatalf("expected delivery to other@mail.my, got %s", mailer.email)
	}
	if mailer.receipt == nil || mailer.receipt.ReservationID != id {
		t.Fatalf("expected receipt for reservation %d, got %+v", id, mailer.receipt)
	}
}
