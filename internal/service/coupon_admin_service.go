package service

import (
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// CouponAdminService coupon management for the admin panel
type CouponAdminService struct {
	couponRepo         repository.CouponRepository
	customerCouponRepo repository.CustomerCouponRepository
	customerRepo       repository.CustomerRepository
	queueClient        *queue.Client
}

// NewCouponAdminService creates a coupon admin service
func NewCouponAdminService(couponRepo repository.CouponRepository, customerCouponRepo repository.CustomerCouponRepository, customerRepo repository.CustomerRepository, queueClient *queue.Client) *CouponAdminService {
	return &CouponAdminService{
		couponRepo:         couponRepo,
		customerCouponRepo: customerCouponRepo,
		customerRepo:       customerRepo,
		queueClient:        queueClient,
	}
}

// CreateCouponInput new coupon details
type CreateCouponInput struct {
	TenantID      uint
	Code          string
	Description   string
	DiscountType  string
	DiscountValue int64
	ExpiresAt     time.Time
	MaxUses       int
}

// Create adds a coupon to a store
func (s *CouponAdminService) Create(input CreateCouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponNotFound
	}
	if err := validateDiscount(input.DiscountType, input.DiscountValue); err != nil {
		return nil, err
	}
	if !input.ExpiresAt.After(time.Now()) {
		return nil, ErrCouponExpired
	}

	existing, err := s.couponRepo.GetByTenantAndCode(input.TenantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	now := time.Now()
	coupon := &models.Coupon{
		TenantID:      input.TenantID,
		Code:          code,
		Description:   strings.TrimSpace(input.Description),
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		ExpiresAt:     input.ExpiresAt,
		MaxUses:       input.MaxUses,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Deactivate disables a coupon without touching its usage history
func (s *CouponAdminService) Deactivate(tenantID, couponID uint) (*models.Coupon, error) {
	coupon, err := s.getTenantCoupon(tenantID, couponID)
	if err != nil {
		return nil, err
	}
	coupon.IsActive = false
	coupon.UpdatedAt = time.Now()
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon that has never been used
func (s *CouponAdminService) Delete(tenantID, couponID uint) error {
	coupon, err := s.getTenantCoupon(tenantID, couponID)
	if err != nil {
		return err
	}
	used, err := s.customerCouponRepo.CountByCoupon(coupon.ID)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrCouponInUse
	}
	return s.couponRepo.Delete(coupon.ID)
}

// List lists coupons for the admin panel
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// UsageCount reports how many distinct customers used a coupon
func (s *CouponAdminService) UsageCount(tenantID, couponID uint) (int64, error) {
	coupon, err := s.getTenantCoupon(tenantID, couponID)
	if err != nil {
		return 0, err
	}
	return s.customerCouponRepo.CountByCoupon(coupon.ID)
}

// Blast queues one coupon offer email per customer of the store
func (s *CouponAdminService) Blast(tenantID, couponID uint) (int, error) {
	coupon, err := s.getTenantCoupon(tenantID, couponID)
	if err != nil {
		return 0, err
	}
	if !coupon.IsActive || !time.Now().Before(coupon.ExpiresAt) {
		return 0, ErrCouponInactive
	}
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return 0, ErrQueueUnavailable
	}

	customers, _, err := s.customerRepo.List(repository.CustomerListFilter{TenantID: tenantID})
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, customer := range customers {
		err := s.queueClient.EnqueueCouponOfferEmail(queue.CouponOfferEmailPayload{
			TenantID:   tenantID,
			CouponID:   coupon.ID,
			CustomerID: customer.ID,
		})
		if err != nil {
			logger.Errorw("coupon_blast_enqueue_failed",
				"tenant_id", tenantID,
				"coupon_id", coupon.ID,
				"customer_id", customer.ID,
				"error", err,
			)
			continue
		}
		queued++
	}
	return queued, nil
}

func (s *CouponAdminService) getTenantCoupon(tenantID, couponID uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByTenantAndID(tenantID, couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func validateDiscount(discountType string, value int64) error {
	switch discountType {
	case constants.DiscountTypePercentage:
		if value <= 0 || value > 100 {
			return ErrCouponDiscountInvalid
		}
	case constants.DiscountTypeFixed:
		if value <= 0 {
			return ErrCouponDiscountInvalid
		}
	default:
		return ErrCouponDiscountInvalid
	}
	return nil
}
