package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/discount"
	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/domain/wallet"
)

type CourseReader interface {
	GetByID(ctx context.Context, courseID string) (*catalog.Course, error)
}

type DiscountCatalog interface {
	FindByCode(ctx context.Context, code string) (*discount.Discount, error)
	GetByIDForUpdateTx(tx *gorm.DB, id int64) (*discount.Discount, error)
	IncrementUsageTx(tx *gorm.DB, id int64) error
}

type ReservationStore interface {
	BookedUnitsTx(tx *gorm.DB, courseType, date, timeOfDay string) (int, error)
	CreateTx(tx *gorm.DB, res *reservation.Reservation, lines []reservation.ReservationLine) error
}

type PaymentStore interface {
	NextIDTx(tx *gorm.DB) (string, error)
	CreateTx(tx *gorm.DB, p *payment.Payment) error
}

type WalletDebiter interface {
	DebitTx(tx *gorm.DB, memberEmail string, amount decimal.Decimal) (*wallet.EWalletTransaction, error)
}
