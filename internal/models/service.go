package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a bookable offering (grooming, vet visit, boarding) owned by a
// tenant. Price is stored in paise.
type Service struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TenantID        uint           `gorm:"index:idx_services_tenant_slug,unique;not null" json:"tenant_id"`
	Slug            string         `gorm:"index:idx_services_tenant_slug,unique;not null" json:"slug"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	Price           Paise          `gorm:"not null" json:"price"`
	DurationMinutes int            `gorm:"not null;default:30" json:"duration_minutes"`
	IsActive        bool           `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Service) TableName() string {
	return "services"
}
