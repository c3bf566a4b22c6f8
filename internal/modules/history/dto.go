package history

import (
	"github.com/shopspring/decimal"
)

// Receipt is the full e-receipt view of one confirmed reservation.
type Receipt struct {
	ReservationID int64             `json:"reservation_id"`
	CourseType    string            `json:"course_type"`
	Date          string            `json:"date"`
	Times         []string          `json:"times"`
	CourseCount   int               `json:"course_count"`
	Price         decimal.Decimal   `json:"price"`
	DiscountType  *string           `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal  `json:"discount_value,omitempty"`
	SubTotals     []decimal.Decimal `json:"sub_totals"`
	Total         decimal.Decimal   `json:"total"`
	PaymentID     string            `json:"payment_id"`
}

type SendReceiptRequest struct {
	Email string `json:"email" binding:"required,email"`
}
