package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is what a member books time slots against. CourseID is a
// short catalog code (C001 style), assigned by the admin side.
type Course struct {
	CourseID  string          `json:"course_id" gorm:"primaryKey;size:4"`
	Name      string          `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	PhotoURL  string          `json:"photo_url,omitempty" gorm:"size:200"`
	IsActive  bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Course) TableName() string { return "courses" }
