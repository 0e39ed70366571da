package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking is a scheduled appointment linking a customer, pet and service
// within a tenant. TotalAmount is the post-discount charge in paise.
type Booking struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	BookingNo      string         `gorm:"uniqueIndex;not null" json:"booking_no"`
	TenantID       uint           `gorm:"index;not null" json:"tenant_id"`
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`
	ServiceID      uint           `gorm:"index;not null" json:"service_id"`
	PetID          uint           `gorm:"index;not null" json:"pet_id"`
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`
	Status         string         `gorm:"index;not null" json:"status"`
	BookingDate    time.Time      `gorm:"index;not null" json:"booking_date"`
	OriginalAmount Paise          `gorm:"not null;default:0" json:"original_amount"`
	DiscountAmount Paise          `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount    Paise          `gorm:"not null;default:0" json:"total_amount"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Pet      *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Coupon   *Coupon   `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
}

// TableName sets the table name
func (Booking) TableName() string {
	return "bookings"
}
