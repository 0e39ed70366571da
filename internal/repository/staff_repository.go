package repository

import (
	"errors"
	"strings"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// StaffRepository staff member data access interface
type StaffRepository interface {
	GetByID(id uint) (*models.StaffMember, error)
	GetByTenantAndEmail(tenantID uint, email string) (*models.StaffMember, error)
	ListByTenant(tenantID uint) ([]models.StaffMember, error)
	Create(member *models.StaffMember) error
	Update(member *models.StaffMember) error
	Delete(tenantID, id uint) error
}

// GormStaffRepository GORM implementation
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a staff repository
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// GetByID fetches a staff member by id
func (r *GormStaffRepository) GetByID(id uint) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByTenantAndEmail fetches a staff member by tenant and email
func (r *GormStaffRepository) GetByTenantAndEmail(tenantID uint, email string) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.Where("tenant_id = ? AND email = ?", tenantID, strings.TrimSpace(email)).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// ListByTenant lists staff members by tenant
func (r *GormStaffRepository) ListByTenant(tenantID uint) ([]models.StaffMember, error) {
	var members []models.StaffMember
	if err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Create creates a staff member
func (r *GormStaffRepository) Create(member *models.StaffMember) error {
	return r.db.Create(member).Error
}

// Update saves a staff member
func (r *GormStaffRepository) Update(member *models.StaffMember) error {
	return r.db.Save(member).Error
}

// Delete soft deletes a tenant's staff member
func (r *GormStaffRepository) Delete(tenantID, id uint) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.StaffMember{}).Error
}
