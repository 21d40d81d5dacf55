// Package model defines database models
package model

import "time"

// User roles. Role is stored as a plain string column and checked
// against these values by the role middleware.
const (
	RoleAdmin      = "ADMIN"
	RoleNormalUser = "NORMAL_USER"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:150" json:"username"`
	Email        string `gorm:"unique;not null;size:250" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"size:20;default:'NORMAL_USER'" json:"role"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	// One-time tokens. Consumed (nulled) by a conditional update so a
	// replayed link can never succeed twice.
	VerificationToken  *string `gorm:"size:64" json:"-"`
	ResetPasswordToken *string `gorm:"size:64" json:"-"`

	// Throttles verification mail resends on repeated unverified logins
	VerificationSentAt *time.Time `json:"-"`

	ProfileImage *string `json:"profileImage,omitempty"`

	// Unverified accounts past this deadline get removed by the cleanup job
	ExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Products []Product `gorm:"foreignKey:UserID" json:"-"`
	Reviews  []Review  `gorm:"foreignKey:UserID" json:"-"`
}
