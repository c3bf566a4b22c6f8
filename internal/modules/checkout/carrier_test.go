package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"courtbook/internal/domain/discount"
	"courtbook/internal/domain/reservation"
)

func setupCarrier(t *testing.T, ttl time.Duration) *GormCarrier {
	t.Helper()
	dsn := fmt.Sprintf("file:carrier_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewGormCarrier(db, ttl)
}

func sampleCheckout() *Checkout {
	ck := NewCheckout(
		&reservation.Draft{
			CourseType:  "Badminton",
			CourseID:    "C001",
			Date:        "2027-03-01",
			CourseCount: 3,
			MemberEmail: "amy@mail.my",
		},
		[]reservation.DraftLine{{Time: "09:00"}, {Time: "14:00"}},
	)
	ck.Discount = &discount.Discount{
		DiscountID:    7,
		DiscountType:  discount.TypePercentage,
		Code:          "SAVE10",
		DiscountValue: dec("0.10"),
		IsActive:      true,
	}
	ck.State = StateDiscountApplied
	return ck
}

func TestCarrierRoundTripPreservesEveryField(t *testing.T) {
	carrier := setupCarrier(t, 30*time.Minute)
	ctx := context.Background()

	saved := sampleCheckout()
	if err := carrier.Save(ctx, "amy@mail.my", saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := carrier.Load(ctx, "amy@mail.my")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if loaded.State != StateDiscountApplied {
		t.Fatalf("expected state %s, got %s", StateDiscountApplied, loaded.State)
	}
	if loaded.Draft != saved.Draft {
		t.Fatalf("draft changed across round trip: %+v vs %+v", loaded.Draft, saved.Draft)
	}
	if len(loaded.Lines) != 2 || loaded.Lines[0].Time != "09:00" || loaded.Lines[1].Time != "14:00" {
		t.Fatalf("lines changed across round trip: %+v", loaded.Lines)
	}
	if loaded.Discount == nil {
		t.Fatal("discount snapshot lost across round trip")
	}
	// Decimal fractions must survive serialization exactly.
	if !loaded.Discount.DiscountValue.Equal(dec("0.10")) {
		t.Fatalf("expected discount value 0.10, got %s", loaded.Discount.DiscountValue)
	}
}

func TestCarrierSaveReplacesPreviousCheckout(t *testing.T) {
	carrier := setupCarrier(t, 30*time.Minute)
	ctx := context.Background()

	first := sampleCheckout()
	if err := carrier.Save(ctx, "amy@mail.my", first); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	second := NewCheckout(
		&reservation.Draft{CourseType: "Futsal", CourseID: "C002", Date: "2027-04-01", CourseCount: 1, MemberEmail: "amy@mail.my"},
		[]reservation.DraftLine{{Time: "14:00"}},
	)
	if err := carrier.Save(ctx, "amy@mail.my", second); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	loaded, err := carrier.Load(ctx, "amy@mail.my")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Draft.CourseID != "C002" {
		t.Fatalf("expected replacement draft C002, got %s", loaded.Draft.CourseID)
	}
	if loaded.Discount != nil {
		t.Fatal("expected no discount on replacement draft")
	}
}

func TestCarrierLoadMissingStateIsExpired(t *testing.T) {
	carrier := setupCarrier(t, 30*time.Minute)
	if _, err := carrier.Load(context.Background(), "nobody@mail.my"); !errors.Is(err, ErrStateExpired) {
		t.Fatalf("expected ErrStateExpired, got %v", err)
	}
}

func TestCarrierLoadStaleStateIsExpiredAndCleared(t *testing.T) {
	carrier := setupCarrier(t, time.Millisecond)
	ctx := context.Background()

	if err := carrier.Save(ctx, "amy@mail.my", sampleCheckout()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := carrier.Load(ctx, "amy@mail.my"); !errors.Is(err, ErrStateExpired) {
		t.Fatalf("expected ErrStateExpired, got %v", err)
	}

	var count int64
	carrier.db.Model(&sessionRow{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected stale row to be cleared, found %d rows", count)
	}
}

func TestCarrierClearIsIdempotent(t *testing.T) {
	carrier := setupCarrier(t, 30*time.Minute)
	ctx := context.Background()

	if err := carrier.Clear(ctx, "amy@mail.my"); err != nil {
		t.Fatalf("Clear on empty store returned error: %v", err)
	}
	if err := carrier.Save(ctx, "amy@mail.my", sampleCheckout()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := carrier.Clear(ctx, "amy@mail.my"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := carrier.Load(ctx, "amy@mail.my"); !errors.Is(err, ErrStateExpired) {
		t.Fatalf("expected ErrStateExpired after clear, got %v", err)
	}
}
