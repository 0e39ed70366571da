package repository

import (
	"errors"
	"strings"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// TenantRepository tenant data access interface
type TenantRepository interface {
	GetByID(id uint) (*models.Tenant, error)
	GetBySlug(slug string) (*models.Tenant, error)
	GetByEmail(email string) (*models.Tenant, error)
	GetByStripeCustomerID(customerID string) (*models.Tenant, error)
	SlugExists(slug string) (bool, error)
	Create(tenant *models.Tenant) error
	Update(tenant *models.Tenant) error
	WithTx(tx *gorm.DB) *GormTenantRepository
}

// GormTenantRepository GORM implementation
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a tenant repository
func NewTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// WithTx binds a transaction
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	if tx == nil {
		return r
	}
	return &GormTenantRepository{db: tx}
}

// GetByID fetches a tenant by id
func (r *GormTenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug fetches a tenant by slug
func (r *GormTenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("slug = ?", strings.TrimSpace(slug)).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByEmail fetches a tenant by owner email
func (r *GormTenantRepository) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("email = ?", strings.TrimSpace(email)).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByStripeCustomerID fetches a tenant by its Stripe customer id
func (r *GormTenantRepository) GetByStripeCustomerID(customerID string) (*models.Tenant, error) {
	trimmed := strings.TrimSpace(customerID)
	if trimmed == "" {
		return nil, nil
	}
	var tenant models.Tenant
	if err := r.db.Where("stripe_customer_id = ?", trimmed).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

// SlugExists reports whether a slug is taken
func (r *GormTenantRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a tenant
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// Update saves a tenant
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}
