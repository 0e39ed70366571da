package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository customer data access interface
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByTenantAndID(tenantID, id uint) (*models.Customer, error)
	GetByTenantAndEmail(tenantID uint, email string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	CountByTenant(tenantID uint) (int64, error)
	ApplyBookingAggregates(id uint, amount models.Paise, visitAt time.Time) error
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository GORM implementation
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID fetches a customer by id
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByTenantAndID fetches a customer scoped to its tenant
func (r *GormCustomerRepository) GetByTenantAndID(tenantID, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByTenantAndEmail fetches a customer by tenant and email
func (r *GormCustomerRepository) GetByTenantAndEmail(tenantID uint, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("tenant_id = ? AND email = ?", tenantID, strings.TrimSpace(email)).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create creates a customer
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves a customer
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// List lists customers
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})
	if filter.TenantID > 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var customers []models.Customer
	if err := query.Order("created_at desc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// CountByTenant counts customers for a tenant
func (r *GormCustomerRepository) CountByTenant(tenantID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyBookingAggregates bumps booking count, total spent and last visit in
// a single UPDATE. Run inside the booking transaction.
func (r *GormCustomerRepository) ApplyBookingAggregates(id uint, amount models.Paise, visitAt time.Time) error {
	return r.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"booking_count": gorm.Expr("booking_count + 1"),
			"total_spent":   gorm.Expr("total_spent + ?", int64(amount)),
			"last_visit_at": visitAt,
		}).Error
}
