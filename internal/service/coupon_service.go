package service

import (
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// CouponService validates coupon codes and computes discounts
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates a coupon service
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Resolve looks up a coupon by code within a tenant and checks that it
// can be applied right now. Returns the coupon when valid.
func (s *CouponService) Resolve(tenantID uint, code string) (*models.Coupon, error) {
	// Codes are stored uppercase
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return nil, ErrCouponNotFound
	}

	coupon, err := s.couponRepo.GetByTenantAndCode(tenantID, trimmed)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if !time.Now().Before(coupon.ExpiresAt) {
		return nil, ErrCouponExpired
	}
	return coupon, nil
}

// QuoteDiscount computes the discount a coupon grants on a price.
// Percentage coupons round down to the whole paisa. Fixed coupons are
// denominated in rupees and never discount below zero.
func QuoteDiscount(price models.Paise, discountType string, discountValue int64) models.Paise {
	switch discountType {
	case constants.DiscountTypePercentage:
		return models.Paise(int64(price) * discountValue / 100)
	case constants.DiscountTypeFixed:
		fixed := models.Paise(discountValue * 100)
		if fixed > price {
			return price
		}
		return fixed
	default:
		return 0
	}
}
