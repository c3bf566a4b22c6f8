package checkout

import (
	"github.com/shopspring/decimal"

	"courtbook/internal/domain/discount"
)

type ApplyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number,omitempty"`
	Bank          string `json:"bank,omitempty"`
	TngNumber     string `json:"tng_number,omitempty"`
}

// Quote is the priced view of the in-flight checkout: the payment page
// view model.
type Quote struct {
	State       State              `json:"state"`
	CourseID    string             `json:"course_id"`
	CourseType  string             `json:"course_type"`
	Date        string             `json:"date"`
	Times       []string           `json:"times"`
	CourseCount int                `json:"course_count"`
	Price       decimal.Decimal    `json:"price"`
	SubTotal    decimal.Decimal    `json:"sub_total"`
	Total       decimal.Decimal    `json:"total"`
	Discount    *discount.Discount `json:"discount,omitempty"`
}

type ConfirmResponse struct {
	ReservationID int64  `json:"reservation_id"`
	PaymentID     string `json:"payment_id"`
}
