package public

import (
	"errors"
	"io"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/payment/stripe"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// TenantSignupCodeRequest requests a signup verification code
type TenantSignupCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestTenantSignup emails a verification code to a prospective store owner
func (h *Handler) RequestTenantSignup(c *gin.Context) {
	var req TenantSignupCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.TenantService.RequestSignup(c.Request.Context(), req.Email); err != nil {
		respondTenantSignupError(c, err)
		return
	}
	response.SuccessWithMsg(c, "verification code sent", nil)
}

// TenantSignupRequest completes store onboarding
type TenantSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// CompleteTenantSignup verifies the code and creates the store with its
// root staff account
func (h *Handler) CompleteTenantSignup(c *gin.Context) {
	var req TenantSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	tenant, err := h.TenantService.CompleteSignup(service.TenantSignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Code:     req.Code,
	})
	if err != nil {
		respondTenantSignupError(c, err)
		return
	}
	response.Success(c, tenant)
}

// StripeWebhook receives subscription lifecycle events from Stripe
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, response.CodeBadRequest, "webhook body unreadable", err)
		return
	}

	headers := map[string]string{
		"Stripe-Signature": c.GetHeader("Stripe-Signature"),
	}
	if err := h.BillingService.HandleWebhook(headers, body); err != nil {
		switch {
		case errors.Is(err, stripe.ErrSignatureInvalid):
			respondError(c, response.CodeBadRequest, "webhook signature invalid", nil)
		case errors.Is(err, stripe.ErrResponseInvalid):
			respondError(c, response.CodeBadRequest, "webhook payload invalid", nil)
		case errors.Is(err, service.ErrPaymentProvider):
			respondError(c, response.CodeInternal, "billing is not configured", nil)
		default:
			respondError(c, response.CodeInternal, "webhook processing failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "received", nil)
}
