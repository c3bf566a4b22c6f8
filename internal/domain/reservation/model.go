package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dates are carried as "2006-01-02" and times of day as "15:04".
// String form keeps capacity queries to exact matches and survives the
// JSON round-trip through the checkout carrier without loss.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Reservation is the durable record produced at confirmation.
// DiscountType/DiscountValue are historical copies taken from the
// discount at confirmation time, so later edits to the discount do not
// rewrite past receipts.
type Reservation struct {
	ReservationID int64            `json:"reservation_id" gorm:"primaryKey;autoIncrement"`
	CourseType    string           `json:"course_type" gorm:"size:100;not null;index:idx_slot,priority:1"`
	CourseID      string           `json:"course_id" gorm:"size:4"`
	Date          string           `json:"date" gorm:"size:10;not null;index:idx_slot,priority:2"`
	CourseCount   int              `json:"course_count" gorm:"not null"`
	MemberEmail   string           `json:"member_email" gorm:"size:100;not null;index"`
	DiscountType  *string          `json:"discount_type,omitempty" gorm:"size:20"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty" gorm:"type:decimal(10,2)"`
	PaymentID     string           `json:"payment_id" gorm:"size:100"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (Reservation) TableName() string { return "reservations" }

// ReservationLine holds one booked time of day and its subtotal.
type ReservationLine struct {
	ReservationLineID int64           `json:"reservation_line_id" gorm:"primaryKey;autoIncrement"`
	ReservationID     int64           `json:"reservation_id" gorm:"not null;index"`
	Time              string          `json:"time" gorm:"size:5;not null;index"`
	SubTotal          decimal.Decimal `json:"sub_total" gorm:"type:decimal(10,2);not null"`
}

func (ReservationLine) TableName() string { return "reservation_lines" }

// Draft is the transient, not-yet-persisted reservation built during
// checkout. It only becomes a Reservation inside the confirmation
// transaction.
type Draft struct {
	CourseType  string `json:"course_type"`
	CourseID    string `json:"course_id"`
	Date        string `json:"date"`
	CourseCount int    `json:"course_count"`
	MemberEmail string `json:"member_email"`
}

// DraftLine mirrors ReservationLine before confirmation. SubTotal is
// filled by pricing, not by the builder.
type DraftLine struct {
	Time     string          `json:"time"`
	SubTotal decimal.Decimal `json:"sub_total"`
}
