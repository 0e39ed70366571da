package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCouponRequest creates a coupon
type CreateCouponRequest struct {
	Code          string `json:"code" binding:"required"`
	Description   string `json:"description"`
	DiscountType  string `json:"discount_type" binding:"required"`
	DiscountValue int64  `json:"discount_value" binding:"required"`
	ExpiresAt     string `json:"expires_at" binding:"required"`
	MaxUses       int    `json:"max_uses"`
}

func respondCouponError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeBadRequest, "coupon code already exists", nil)
	case errors.Is(err, service.ErrCouponDiscountInvalid):
		respondError(c, response.CodeBadRequest, "discount value is invalid", nil)
	case errors.Is(err, service.ErrCouponExpired):
		respondError(c, response.CodeBadRequest, "expiry must be in the future", nil)
	case errors.Is(err, service.ErrCouponInactive):
		respondError(c, response.CodeBadRequest, "coupon is inactive or expired", nil)
	case errors.Is(err, service.ErrCouponInUse):
		respondError(c, response.CodeBadRequest, "coupon has been used and cannot be deleted", nil)
	case errors.Is(err, service.ErrQueueUnavailable):
		respondError(c, response.CodeInternal, "queue unavailable", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListCoupons returns the store's coupons
func (h *Handler) ListCoupons(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
	}
	if active := c.Query("is_active"); active != "" {
		value := active == "true" || active == "1"
		filter.IsActive = &value
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "coupons could not be loaded", err)
		return
	}

	response.SuccessWithPage(c, coupons, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateCoupon adds a coupon to the store
func (h *Handler) CreateCoupon(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "expiry date is invalid", nil)
		return
	}

	coupon, err := h.CouponAdminService.Create(service.CreateCouponInput{
		TenantID:      tenantID,
		Code:          req.Code,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		ExpiresAt:     expiresAt,
		MaxUses:       req.MaxUses,
	})
	if err != nil {
		respondCouponError(c, err, "coupon could not be created")
		return
	}
	response.Success(c, coupon)
}

// DeactivateCoupon turns a coupon off without deleting it
func (h *Handler) DeactivateCoupon(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "coupon id is invalid", nil)
		return
	}

	coupon, err := h.CouponAdminService.Deactivate(tenantID, uint(couponID))
	if err != nil {
		respondCouponError(c, err, "coupon could not be deactivated")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes an unused coupon
func (h *Handler) DeleteCoupon(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "coupon id is invalid", nil)
		return
	}

	if err := h.CouponAdminService.Delete(tenantID, uint(couponID)); err != nil {
		respondCouponError(c, err, "coupon could not be deleted")
		return
	}
	response.SuccessWithMsg(c, "coupon deleted", nil)
}

// GetCouponUsage returns how many bookings used a coupon
func (h *Handler) GetCouponUsage(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "coupon id is invalid", nil)
		return
	}

	count, err := h.CouponAdminService.UsageCount(tenantID, uint(couponID))
	if err != nil {
		respondCouponError(c, err, "coupon usage could not be loaded")
		return
	}
	response.Success(c, gin.H{"coupon_id": couponID, "usage_count": count})
}

// BlastCoupon queues a coupon offer email to every customer of the store
func (h *Handler) BlastCoupon(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "coupon id is invalid", nil)
		return
	}

	queued, err := h.CouponAdminService.Blast(tenantID, uint(couponID))
	if err != nil {
		respondCouponError(c, err, "coupon blast failed")
		return
	}
	response.Success(c, gin.H{"queued": queued})
}
