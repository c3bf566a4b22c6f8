package wallet

import (
	"github.com/shopspring/decimal"

	"courtbook/internal/modules/checkout"
)

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	checkout.PaymentMethodRequest
}
