package public

import (
	"time"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerSignupRequest registers a customer account within a store
type CustomerSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// CustomerSignup registers a customer under the store in the :slug param
func (h *Handler) CustomerSignup(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req CustomerSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	customer, err := h.CustomerAuthService.Signup(service.SignupInput{
		TenantID: tenant.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondCustomerAuthError(c, err)
		return
	}
	response.Success(c, customer)
}

// CustomerLoginRequest logs a customer in
type CustomerLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CustomerLogin verifies credentials and issues a session token
func (h *Handler) CustomerLogin(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	customer, token, expiresAt, err := h.CustomerAuthService.Login(tenant.ID, req.Email, req.Password)
	if err != nil {
		respondCustomerAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"customer":   customer,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// RequestAccountClaimRequest starts the guest-account claim flow
type RequestAccountClaimRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestAccountClaim emails a verification code to a guest-provisioned
// customer so they can set a password
func (h *Handler) RequestAccountClaim(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req RequestAccountClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CustomerAuthService.RequestClaim(c.Request.Context(), tenant.ID, req.Email); err != nil {
		respondCustomerAuthError(c, err)
		return
	}
	response.SuccessWithMsg(c, "verification code sent", nil)
}

// ClaimAccountRequest completes the guest-account claim flow
type ClaimAccountRequest struct {
	Email    string `json:"email" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ClaimAccount verifies the emailed code and sets the customer's password
func (h *Handler) ClaimAccount(c *gin.Context) {
	tenant, ok := h.resolveStore(c)
	if !ok {
		return
	}

	var req ClaimAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	customer, err := h.CustomerAuthService.ClaimAccount(tenant.ID, req.Email, req.Code, req.Password)
	if err != nil {
		respondCustomerAuthError(c, err)
		return
	}
	response.Success(c, customer)
}

// GetProfile returns the logged-in customer's profile
func (h *Handler) GetProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	tenantID, ok := getCustomerTenantID(c)
	if !ok {
		return
	}

	customer, err := h.CustomerRepo.GetByTenantAndID(tenantID, customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile could not be loaded", err)
		return
	}
	if customer == nil {
		respondError(c, response.CodeNotFound, "customer not found", nil)
		return
	}
	response.Success(c, customer)
}
