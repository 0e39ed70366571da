package admin

import (
	"errors"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffLoginRequest logs a staff member into their store's admin panel
type StaffLoginRequest struct {
	StoreSlug     string `json:"store_slug" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

// StaffLogin verifies credentials and issues a staff session token
func (h *Handler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneStaffLogin, req.CaptchaID, req.CaptchaAnswer); err != nil {
		respondError(c, response.CodeBadRequest, "captcha is invalid", nil)
		return
	}

	tenant, err := h.TenantRepo.GetBySlug(req.StoreSlug)
	if err != nil {
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}
	if tenant == nil || !tenant.IsActive {
		respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		return
	}

	staff, token, expiresAt, err := h.StaffAuthService.Login(tenant.ID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, gin.H{
		"staff":      staff,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// GetStaffProfile returns the logged-in staff member
func (h *Handler) GetStaffProfile(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	staff, err := h.StaffRepo.GetByID(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile could not be loaded", err)
		return
	}
	if staff == nil || staff.TenantID != tenantID {
		respondError(c, response.CodeNotFound, "staff member not found", nil)
		return
	}
	response.Success(c, staff)
}
