package models

import (
	"time"
)

// OTPCode is a short-lived email verification code. Used for tenant signup
// and for guest-provisioned customers claiming their account.
type OTPCode struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Email      string     `gorm:"index;not null" json:"email"`
	Purpose    string     `gorm:"index;not null" json:"purpose"`
	Code       string     `gorm:"not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"index;not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (OTPCode) TableName() string {
	return "otp_codes"
}
