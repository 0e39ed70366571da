package models

import (
	"time"

	"gorm.io/gorm"
)

// StaffMember is a tenant team member with a role (root/admin/staff).
type StaffMember struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TenantID     uint           `gorm:"index:idx_staff_tenant_email,unique;not null" json:"tenant_id"`
	Email        string         `gorm:"index:idx_staff_tenant_email,unique;not null" json:"email"`
	Name         string         `gorm:"not null" json:"name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"not null;default:'staff'" json:"role"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (StaffMember) TableName() string {
	return "staff_members"
}
