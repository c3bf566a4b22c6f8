package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is immutable after creation. Price is the pre-discount
// subtotal, Total what was actually charged.
type Payment struct {
	PaymentID  string          `json:"payment_id" gorm:"primaryKey;size:100"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	DiscountID *int64          `json:"discount_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
