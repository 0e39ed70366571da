package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is one onboarded pet-care business. All services, customers,
// bookings and coupons are scoped to a tenant.
type Tenant struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone              string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	SubscriptionStatus string         `gorm:"index;not null;default:'pending'" json:"subscription_status"`
	StripeCustomerID   string         `gorm:"index" json:"-"`
	EmailVerifiedAt    *time.Time     `json:"email_verified_at,omitempty"`
	IsActive           bool           `gorm:"not null" json:"is_active"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Tenant) TableName() string {
	return "tenants"
}
