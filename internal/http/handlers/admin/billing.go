package admin

import (
	"errors"
	"strconv"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// StartSubscriptionCheckout opens a Stripe checkout session for the store
func (h *Handler) StartSubscriptionCheckout(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	url, err := h.BillingService.StartCheckout(c.Request.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "store not found", nil)
		case errors.Is(err, service.ErrPaymentProvider):
			respondError(c, response.CodeBadRequest, "billing is unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "checkout could not be started", err)
		}
		return
	}
	response.Success(c, gin.H{"checkout_url": url})
}

// ListPaymentLogs returns the store's billing history
func (h *Handler) ListPaymentLogs(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	logs, total, err := h.PaymentLogRepo.List(repository.PaymentLogListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment logs could not be loaded", err)
		return
	}

	response.SuccessWithPage(c, logs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
