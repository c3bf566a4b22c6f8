package auth

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Member is keyed by email; the rest of the system references members
// by email only.
type Member struct {
	Email        string    `json:"email" gorm:"primaryKey;size:100" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Role         Role      `json:"role" gorm:"size:16;not null;default:member"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "members" }
