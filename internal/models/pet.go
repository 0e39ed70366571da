package models

import (
	"time"

	"gorm.io/gorm"
)

// Pet belongs to exactly one customer. A booking may only reference a pet
// owned by the booking customer.
type Pet struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TenantID   uint           `gorm:"index;not null" json:"tenant_id"`
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`
	Name       string         `gorm:"not null" json:"name"`
	Type       string         `gorm:"not null" json:"type"`
	Breed      string         `json:"breed,omitempty"`
	AgeYears   int            `json:"age_years,omitempty"`
	Gender     string         `gorm:"type:varchar(16)" json:"gender,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Pet) TableName() string {
	return "pets"
}
