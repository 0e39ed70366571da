package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a pet owner registered under a tenant. BookingCount, TotalSpent
// and LastVisitAt are aggregates maintained by the booking engine inside the
// booking transaction.
type Customer struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	TenantID         uint           `gorm:"index:idx_customers_tenant_email,unique;not null" json:"tenant_id"`
	Email            string         `gorm:"index:idx_customers_tenant_email,unique;not null" json:"email"`
	Name             string         `gorm:"not null" json:"name"`
	Phone            string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	PasswordHash     string         `gorm:"not null" json:"-"`
	GuestProvisioned bool           `gorm:"not null;default:false" json:"guest_provisioned"`
	BookingCount     int            `gorm:"not null;default:0" json:"booking_count"`
	TotalSpent       Paise          `gorm:"not null;default:0" json:"total_spent"`
	LastVisitAt      *time.Time     `json:"last_visit_at,omitempty"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Customer) TableName() string {
	return "customers"
}
