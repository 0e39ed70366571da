package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a tenant-scoped discount code. Codes are stored uppercase.
// DiscountValue is a percentage for percentage coupons and whole rupees for
// fixed coupons. MaxUses is informational only; the booking engine does not
// enforce it.
type Coupon struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TenantID      uint           `gorm:"index:idx_coupons_tenant_code,unique;not null" json:"tenant_id"`
	Code          string         `gorm:"index:idx_coupons_tenant_code,unique;not null" json:"code"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	DiscountType  string         `gorm:"not null" json:"discount_type"`
	DiscountValue int64          `gorm:"not null" json:"discount_value"`
	ExpiresAt     time.Time      `gorm:"index;not null" json:"expires_at"`
	MaxUses       int            `gorm:"not null;default:0" json:"max_uses"`
	IsActive      bool           `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Coupon) TableName() string {
	return "coupons"
}
