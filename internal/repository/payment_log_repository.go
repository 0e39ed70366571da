package repository

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// PaymentLogRepository payment log data access interface
type PaymentLogRepository interface {
	GetByReference(reference string) (*models.PaymentLog, error)
	Create(log *models.PaymentLog) error
	List(filter PaymentLogListFilter) ([]models.PaymentLog, int64, error)
	SumSucceededByTenant(tenantID uint) (models.Paise, error)
}

// GormPaymentLogRepository GORM implementation
type GormPaymentLogRepository struct {
	db *gorm.DB
}

// NewPaymentLogRepository creates a payment log repository
func NewPaymentLogRepository(db *gorm.DB) *GormPaymentLogRepository {
	return &GormPaymentLogRepository{db: db}
}

// GetByReference fetches a payment log by provider reference
func (r *GormPaymentLogRepository) GetByReference(reference string) (*models.PaymentLog, error) {
	var log models.PaymentLog
	if err := r.db.Where("reference = ?", reference).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// Create appends a payment log row
func (r *GormPaymentLogRepository) Create(log *models.PaymentLog) error {
	return r.db.Create(log).Error
}

// List lists payment logs
func (r *GormPaymentLogRepository) List(filter PaymentLogListFilter) ([]models.PaymentLog, int64, error) {
	query := r.db.Model(&models.PaymentLog{})
	if filter.TenantID > 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.PaymentLog
	if err := query.Order("created_at desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// SumSucceededByTenant totals succeeded payment amounts for a tenant
func (r *GormPaymentLogRepository) SumSucceededByTenant(tenantID uint) (models.Paise, error) {
	var sum int64
	if err := r.db.Model(&models.PaymentLog{}).
		Where("tenant_id = ? AND status = ?", tenantID, "succeeded").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return models.Paise(sum), nil
}
