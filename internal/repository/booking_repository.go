package repository

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// BookingRepository booking data access interface
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetByTenantAndID(tenantID, id uint) (*models.Booking, error)
	List(filter BookingListFilter) ([]models.Booking, int64, error)
	CountByTenant(tenantID uint) (int64, error)
	CountByCoupon(tenantID, couponID uint) (int64, error)
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) *GormBookingRepository
}

// GormBookingRepository GORM implementation
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a booking repository
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx binds a transaction
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

func (r *GormBookingRepository) withRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("Service").Preload("Pet").Preload("Customer").Preload("Coupon")
}

// Create creates a booking
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByID fetches a booking with relations
func (r *GormBookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.withRelations(r.db).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByTenantAndID fetches a booking scoped to its tenant
func (r *GormBookingRepository) GetByTenantAndID(tenantID, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.withRelations(r.db).
		Where("tenant_id = ?", tenantID).
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// List lists bookings
func (r *GormBookingRepository) List(filter BookingListFilter) ([]models.Booking, int64, error) {
	query := r.db.Model(&models.Booking{})
	if filter.TenantID > 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BookingFrom != nil {
		query = query.Where("booking_date >= ?", filter.BookingFrom)
	}
	if filter.BookingTo != nil {
		query = query.Where("booking_date <= ?", filter.BookingTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var bookings []models.Booking
	if err := r.withRelations(query).Order("booking_date desc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByTenant counts bookings for a tenant
func (r *GormBookingRepository) CountByTenant(tenantID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCoupon counts bookings that applied a coupon
func (r *GormBookingRepository) CountByCoupon(tenantID, couponID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).
		Where("tenant_id = ? AND coupon_id = ?", tenantID, couponID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatus updates the booking status column
func (r *GormBookingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}
