package discount

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePercentage  = "percentage"
	TypeFixedAmount = "fixedAmount"
)

// Discount is a redeemable code. Percentage values are stored as a
// fraction (10% -> 0.10); the admin surface does the division on the
// way in. UsageLimit nil means unlimited.
type Discount struct {
	DiscountID    int64           `json:"discount_id" gorm:"primaryKey;autoIncrement"`
	DiscountType  string          `json:"discount_type" gorm:"size:20;not null"`
	Code          string          `json:"code" gorm:"size:50;not null;index"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:decimal(10,2);not null"`
	IsActive      bool            `json:"is_active" gorm:"not null;default:true"`
	UsageLimit    *int            `json:"usage_limit,omitempty"`
	UsedCount     int             `json:"used_count" gorm:"not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Discount) TableName() string { return "discounts" }

// LimitReached reports whether the usage limit has been consumed.
func (d *Discount) LimitReached() bool {
	return d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit
}
