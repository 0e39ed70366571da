package repository

import (
	"time"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerCouponRepository coupon usage data access interface
type CustomerCouponRepository interface {
	Upsert(customerID, couponID uint, usedAt time.Time) error
	CountByCoupon(couponID uint) (int64, error)
	ListByCustomer(customerID uint) ([]models.CustomerCoupon, error)
	WithTx(tx *gorm.DB) *GormCustomerCouponRepository
}

// GormCustomerCouponRepository GORM implementation
type GormCustomerCouponRepository struct {
	db *gorm.DB
}

// NewCustomerCouponRepository creates a coupon usage repository
func NewCustomerCouponRepository(db *gorm.DB) *GormCustomerCouponRepository {
	return &GormCustomerCouponRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCustomerCouponRepository) WithTx(tx *gorm.DB) *GormCustomerCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerCouponRepository{db: tx}
}

// Upsert writes the usage row for (customer, coupon), overwriting UsedAt on
// re-use. Last writer wins under concurrency; no per-customer cap here.
func (r *GormCustomerCouponRepository) Upsert(customerID, couponID uint, usedAt time.Time) error {
	usage := models.CustomerCoupon{
		CustomerID: customerID,
		CouponID:   couponID,
		UsedAt:     usedAt,
		CreatedAt:  usedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "coupon_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"used_at": usedAt}),
	}).Create(&usage).Error
}

// CountByCoupon counts distinct customers that used a coupon
func (r *GormCustomerCouponRepository) CountByCoupon(couponID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CustomerCoupon{}).
		Where("coupon_id = ?", couponID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByCustomer lists a customer's coupon usage
func (r *GormCustomerCouponRepository) ListByCustomer(customerID uint) ([]models.CustomerCoupon, error) {
	var usages []models.CustomerCoupon
	if err := r.db.Where("customer_id = ?", customerID).
		Order("used_at desc").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}
