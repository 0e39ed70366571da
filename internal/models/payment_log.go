package models

import (
	"time"
)

// PaymentLog records a subscription payment event reported by the payment
// provider webhook. Reference is the provider-side event id, used to drop
// duplicate webhook deliveries.
type PaymentLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TenantID    uint      `gorm:"index;not null" json:"tenant_id"`
	Provider    string    `gorm:"not null;default:'stripe'" json:"provider"`
	Reference   string    `gorm:"uniqueIndex;not null" json:"reference"`
	Amount      Paise     `gorm:"not null;default:0" json:"amount"`
	Currency    string    `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	Status      string    `gorm:"index;not null" json:"status"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (PaymentLog) TableName() string {
	return "payment_logs"
}
