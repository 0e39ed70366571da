package repository

import (
	"errors"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// OTPRepository verification code data access interface
type OTPRepository interface {
	Create(code *models.OTPCode) error
	GetLatest(email, purpose string) (*models.OTPCode, error)
	MarkConsumed(id uint, at time.Time) error
	DeleteExpired(before time.Time) error
}

// GormOTPRepository GORM implementation
type GormOTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates an OTP repository
func NewOTPRepository(db *gorm.DB) *GormOTPRepository {
	return &GormOTPRepository{db: db}
}

// Create stores a new verification code
func (r *GormOTPRepository) Create(code *models.OTPCode) error {
	return r.db.Create(code).Error
}

// GetLatest returns the most recent unconsumed code for an email/purpose pair
func (r *GormOTPRepository) GetLatest(email, purpose string) (*models.OTPCode, error) {
	var code models.OTPCode
	if err := r.db.Where("email = ? AND purpose = ? AND consumed_at IS NULL", email, purpose).
		Order("created_at desc").
		First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// MarkConsumed records that a code has been used
func (r *GormOTPRepository) MarkConsumed(id uint, at time.Time) error {
	return r.db.Model(&models.OTPCode{}).Where("id = ?", id).Update("consumed_at", at).Error
}

// DeleteExpired removes codes that expired before the given time
func (r *GormOTPRepository) DeleteExpired(before time.Time) error {
	return r.db.Where("expires_at < ?", before).Delete(&models.OTPCode{}).Error
}
