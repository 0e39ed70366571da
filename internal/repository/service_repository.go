package repository

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// ServiceRepository service catalog data access interface
type ServiceRepository interface {
	GetByID(id uint) (*models.Service, error)
	GetByTenantAndID(tenantID, id uint) (*models.Service, error)
	GetByTenantAndSlug(tenantID uint, slug string) (*models.Service, error)
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id uint) error
	List(filter ServiceListFilter) ([]models.Service, int64, error)
	CountActiveByTenant(tenantID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormServiceRepository
}

// GormServiceRepository GORM implementation
type GormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a service repository
func NewServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// WithTx binds a transaction
func (r *GormServiceRepository) WithTx(tx *gorm.DB) *GormServiceRepository {
	if tx == nil {
		return r
	}
	return &GormServiceRepository{db: tx}
}

// GetByID fetches a service by id
func (r *GormServiceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// GetByTenantAndID fetches a service scoped to its tenant
func (r *GormServiceRepository) GetByTenantAndID(tenantID, id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// GetByTenantAndSlug fetches a service by tenant and slug
func (r *GormServiceRepository) GetByTenantAndSlug(tenantID uint, slug string) (*models.Service, error) {
	var service models.Service
	if err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// Create creates a service
func (r *GormServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// Update saves a service
func (r *GormServiceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// Delete soft deletes a service
func (r *GormServiceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}

// List lists services
func (r *GormServiceRepository) List(filter ServiceListFilter) ([]models.Service, int64, error) {
	query := r.db.Model(&models.Service{})
	if filter.TenantID > 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var services []models.Service
	if err := query.Order("created_at desc").Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// CountActiveByTenant counts active services for a tenant
func (r *GormServiceRepository) CountActiveByTenant(tenantID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Service{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
