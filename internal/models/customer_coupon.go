package models

import (
	"time"
)

// CustomerCoupon records that a customer used a coupon. At most one row
// exists per (customer, coupon) pair; re-use overwrites UsedAt.
type CustomerCoupon struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"index:idx_customer_coupons_pair,unique;not null" json:"customer_id"`
	CouponID   uint      `gorm:"index:idx_customer_coupons_pair,unique;not null" json:"coupon_id"`
	UsedAt     time.Time `gorm:"not null" json:"used_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name
func (CustomerCoupon) TableName() string {
	return "customer_coupons"
}
