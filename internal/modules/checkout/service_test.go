package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/discount"
	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/domain/wallet"
)

type testEnv struct {
	db        *gorm.DB
	service   *Service
	wallets   *wallet.Service
	discounts *discount.Repository
}

func setupTestEnv(t *testing.T, maxPerSlot int) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&catalog.Course{},
		&discount.Discount{},
		&reservation.Reservation{},
		&reservation.ReservationLine{},
		&payment.Payment{},
		&wallet.EWallet{},
		&wallet.EWalletTransaction{},
		&sessionRow{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	wallets := wallet.NewService(db)
	discounts := discount.NewRepository(db)
	svc := NewService(
		db,
		NewGormCarrier(db, 30*time.Minute),
		catalog.NewRepository(db),
		discounts,
		reservation.NewRepository(db),
		payment.NewRepository(db),
		wallets,
		maxPerSlot,
	)
	return &testEnv{db: db, service: svc, wallets: wallets, discounts: discounts}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (e *testEnv) createCourse(t *testing.T, id, name, price string) {
	t.Helper()
	course := catalog.Course{CourseID: id, Name: name, Price: dec(price), IsActive: true}
	if err := e.db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
}

func (e *testEnv) begin(t *testing.T, member string, count int, times ...string) {
	t.Helper()
	draft := &reservation.Draft{
		CourseType:  "Badminton",
		CourseID:    "C001",
		Date:        "2027-03-01",
		CourseCount: count,
		MemberEmail: member,
	}
	lines := make([]reservation.DraftLine, 0, len(times))
	for _, tm := range times {
		lines = append(lines, reservation.DraftLine{Time: tm})
	}
	if err := e.service.Begin(context.Background(), member, draft, lines); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
}

func TestConfirmWithEWalletDebitsAndPersists(t *testing.T) {
	env := setupTestEnv(t, 20)
	ctx := context.Background()
	env.createCourse(t, "C001", "Badminton", "10.00")

	if _, _, err := env.wallets.Credit(ctx, "amy@mail.my", dec("25.00")); err != nil {
		t.Fatalf("Credit returned error: %v", err)
	}

	env.begin(t, "amy@mail.my", 2, "09:00")

	resp, err := env.service.Confirm(ctx, "amy@mail.my", EWallet{})
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if resp.PaymentID != "P001" {
		t.Fatalf("expected payment id P001, got %s", resp.PaymentID)
	}
	if resp.ReservationID == 0 {
		t.Fatalf("expected a reservation id, got 0")
	}

	w, err := env.wallets.GetOrCreateWallet(ctx, "amy@mail.my")
	if err != nil {
		t.Fatalf("GetOrCreateWallet returned error: %v", err)
	}
	if !w.Balance.Equal(dec("5.00")) {
		t.Fatalf("expected balance 5.00 after debit, got %s", w.Balance)
	}

	var pay payment.Payment
	if err := env.db.Where("payment_id = ?", "P001").First(&pay).Error; err != nil {
		t.Fatalf("payment row not found: %v", err)
	}
	if !pay.Total.Equal(dec("20.00")) {
		t.Fatalf("expected payment total 20.00, got %s", pay.Total)
	}

	var lines []reservation.ReservationLine
	if err := env.db.Where("reservation_id = ?", resp.ReservationID).Find(&lines).Error; err != nil {
		t.Fatalf("failed to load lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !lines[0].SubTotal.Equal(dec("20.00")) {
		t.Fatalf("expected line subtotal 20.00, got %s", lines[0].SubTotal)
	}

	// Confirmation consumes the in-flight checkout.
	if _, err := env.service.Quote(ctx, "amy@mail.my"); !errors.Is(err, ErrStateExpired) {
		t.Fatalf("expected ErrStateExpired after confirm, got %v", err)
	}
}

func TestConfirmInsufficientFundsRollsBackEverything(t *testing.T) {
	env := setupTestEnv(t, 20)
	ctx := context.Background()
	env.createCourse(t, "C001", "Badminton", "10.00")

	if _, _, err := env.wallets.Credit(ctx, "ben@mail.my", dec("15.00")); err != nil {
		t.Fatalf("Credit returned error: %v", err)
	}

	env.begin(t, "ben@mail.my", 2, "09:00")

	_, err := env.service.Confirm(ctx, "ben@mail.my", EWallet{})
	if !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var resCount, payCount int64
	env.db.Model(&reservation.Reservation{}).Count(&resCount)
	env.db.Model(&payment.Payment{}).Count(&payCount)
	if resCount != 0 || payCount != 0 {
		t.Fatalf("expected no durable records, got %d reservations and %d payments", resCount, payCount)
	}

	w, err := env.wallets.GetOrCreateWallet(ctx, "ben@mail.my")
	if err != nil {
		t.Fatalf("GetOrCreateWallet returned error: %v", err)
	}
	if !w.Balance.Equal(dec("15.00")) {
		t.Fatalf("expected balance unchanged at 15.00, got %s", w.Balance)
	}

	// The checkout survives so the member can switch method and retry.
	if _, err := env.service.Quote(ctx, "ben@mail.my"); err != nil {
		t.Fatalf("expected checkout to survive failed confirm, got %v", err)
	}
}

func TestDiscountUsageCountsOncePerConfirmation(t *testing.T) {
	env := setupTestEnv(t, 20)
	ctx := context.Background()
	env.createCourse(t, "C001", "Badminton", "10.00")

	limit := 1
	d := discount.Discount{
		DiscountType:  discount.TypePercentage,
		Code:          "SAVE10",
		DiscountValue: dec("0.10"),
		IsActive:      true,
		UsageLimit:    &limit,
	}
	if err := env.db.Create(&d).Error; err != nil {
		t.Fatalf("failed to create discount: %v", err)
	}

	env.begin(t, "cho@mail.my", 2, "09:00")

	if _, err := env.service.ApplyDiscount(ctx, "cho@mail.my", "SAVE10"); err != nil {
		t.Fatalf("ApplyDiscount returned error: %v", err)
	}
	// Re-applying before confirmation must not consume the limit.
	if _, err := env.service.ApplyDiscount(ctx, "cho@mail.my", "SAVE10"); err != nil {
		t.Fatalf("second ApplyDiscount returned error: %v", err)
	}

	card, err := NewCard("123456789012", "Maybank")
	if err != nil {
		t.Fatalf("NewCard returned error: %v", err)
	}
	resp, err := env.service.Confirm(ctx, "cho@mail.my", card)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	var pay payment.Payment
	if err := env.db.Where("payment_id = ?", resp.PaymentID).First(&pay).Error; err != nil {
		t.Fatalf("payment row not found: %v", err)
	}
	if !pay.Total.Equal(dec("18.00")) {
		t.Fatalf("expected discounted total 18.00, got %s", pay.Total)
	}

	stored, err := env.discounts.GetByID(ctx, d.DiscountID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("expected used_count 1 after one confirmation, got %d", stored.UsedCount)
	}

	var res reservation.Reservation
	if err := env.db.Where("reservation_id = ?", resp.ReservationID).First(&res).Error; err != nil {
		t.Fatalf("reservation row not found: %v", err)
	}
	if res.DiscountType == nil || *res.DiscountType != discount.TypePercentage {
		t.Fatalf("expected discount type snapshot on reservation, got %v", res.DiscountType)
	}
	if res.DiscountValue == nil || !res.DiscountValue.Equal(dec("0.10")) {
		t.Fatalf("expected discount value snapshot 0.10, got %v", res.DiscountValue)
	}

	// The limit is now consumed; the next member is turned away at apply.
	env.begin(t, "dan@mail.my", 1, "14:00")
	if _, err := env.service.ApplyDiscount(ctx, "dan@mail.my", "SAVE10"); !errors.Is(err, ErrDiscountLimitReached) {
		t.Fatalf("expected ErrDiscountLimitReached, got %v", err)
	}
}

func TestConfirmRechecksCapacityAgainstStaleDraft(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()
	env.createCourse(t, "C001", "Badminton", "10.00")

	// Both members built their drafts while the slot was open.
	env.begin(t, "eve@mail.my", 2, "09:00")
	env.begin(t, "fred@mail.my", 1, "09:00")

	card, err := NewCard("123456789012", "CIMB")
	if err != nil {
		t.Fatalf("NewCard returned error: %v", err)
	}
	if _, err := env.service.Confirm(ctx, "eve@mail.my", card); err != nil {
		t.Fatalf("first Confirm returned error: %v", err)
	}

	_, err = env.service.Confirm(ctx, "fred@mail.my", card)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.Time != "09:00" || capErr.Remaining != 0 {
		t.Fatalf("expected 09:00 with 0 remaining, got %s with %d", capErr.Time, capErr.Remaining)
	}

	var resCount int64
	env.db.Model(&reservation.Reservation{}).Count(&resCount)
	if resCount != 1 {
		t.Fatalf("expected exactly one reservation, got %d", resCount)
	}
}

func TestConfirmWithoutMethodIsRejected(t *testing.T) {
	env := setupTestEnv(t, 20)
	env.createCourse(t, "C001", "Badminton", "10.00")
	env.begin(t, "gina@mail.my", 1, "09:00")

	if _, err := env.service.Confirm(context.Background(), "gina@mail.my", nil); !errors.Is(err, ErrNoPaymentMethod) {
		t.Fatalf("expected ErrNoPaymentMethod, got %v", err)
	}
}

func TestApplyDiscountRejectsInactiveAndUnknownCodes(t *testing.T) {
	env := setupTestEnv(t, 20)
	ctx := context.Background()
	env.createCourse(t, "C001", "Badminton", "10.00")

	inactive := discount.Discount{
		DiscountType:  discount.TypeFixedAmount,
		Code:          "OLD5",
		DiscountValue: dec("5.00"),
		IsActive:      false,
	}
	if err := env.db.Create(&inactive).Error; err != nil {
		t.Fatalf("failed to create discount: %v", err)
	}

	env.begin(t, "hui@mail.my", 1, "09:00")

	if _, err := env.service.ApplyDiscount(ctx, "hui@mail.my", "OLD5"); !errors.Is(err, ErrDiscountInactive) {
		t.Fatalf("expected ErrDiscountInactive, got %v", err)
	}
	if _, err := env.service.ApplyDiscount(ctx, "hui@mail.my", "NOPE"); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got %v", err)
	}
	// Code lookup is exact; the lowercase form is a different string.
	if _, err := env.service.ApplyDiscount(ctx, "hui@mail.my", "old5"); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound for case mismatch, got %v", err)
	}
}

func TestTotalsFixedAmountFloorsAtZero(t *testing.T) {
	env := setupTestEnv(t, 20)

	ck := NewCheckout(
		&reservation.Draft{CourseType: "Badminton", CourseID: "C001", Date: "2027-03-01", CourseCount: 1},
		[]reservation.DraftLine{{Time: "09:00"}},
	)
	ck.Discount = &discount.Discount{DiscountType: discount.TypeFixedAmount, DiscountValue: dec("50.00")}

	subTotal, total := env.service.totals(dec("10.00"), ck)
	if !subTotal.Equal(dec("10.00")) {
		t.Fatalf("expected subtotal 10.00, got %s", subTotal)
	}
	if !total.Equal(dec("0.00")) {
		t.Fatalf("expected total floored at 0.00, got %s", total)
	}
}
