package catalog

import (
	"github.com/shopspring/decimal"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/modules/booking"
)

type CreateCourseRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	PhotoURL string          `json:"photo_url"`
}

type UpdateCourseRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	PhotoURL *string          `json:"photo_url"`
	IsActive *bool            `json:"is_active"`
}

// Discount values arrive the way an admin types them: a percentage
// discount of 10 means 10%, stored as 0.10.
type CreateDiscountRequest struct {
	Type       string          `json:"type" binding:"required,oneof=percentage fixedAmount"`
	Code       string          `json:"code" binding:"required"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	UsageLimit *int            `json:"usage_limit"`
}

type UpdateDiscountRequest struct {
	Type       string          `json:"type" binding:"required,oneof=percentage fixedAmount"`
	Code       string          `json:"code" binding:"required"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	UsageLimit *int            `json:"usage_limit"`
	IsActive   bool            `json:"is_active"`
	IsReset    bool            `json:"is_reset"`
}

type CourseDetail struct {
	Course       catalog.Course             `json:"course"`
	Date         string                     `json:"date,omitempty"`
	Availability []booking.SlotAvailability `json:"availability,omitempty"`
}
