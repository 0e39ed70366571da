package repository

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// CouponRepository coupon data access interface
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByTenantAndID(tenantID, id uint) (*models.Coupon, error)
	GetByTenantAndCode(tenantID uint, code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	WithTx(tx *gorm.DB) *GormCouponRepository
}

// GormCouponRepository GORM implementation
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a coupon repository
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCouponRepository) WithTx(tx *gorm.DB) *GormCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID fetches a coupon by id
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByTenantAndID fetches a coupon scoped to its tenant
func (r *GormCouponRepository) GetByTenantAndID(tenantID, id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByTenantAndCode fetches a coupon by tenant and uppercase code
func (r *GormCouponRepository) GetByTenantAndCode(tenantID uint, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("tenant_id = ? AND code = ?", tenantID, code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create creates a coupon
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// Update saves a coupon
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

// Delete hard deletes a coupon. Callers must check usage first.
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Coupon{}, id).Error
}

// List lists coupons
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	query := r.db.Model(&models.Coupon{})
	if filter.TenantID > 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var coupons []models.Coupon
	if err := query.Order("created_at desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}
