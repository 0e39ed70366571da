package admin

import (
	"errors"
	"strconv"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

func respondStaffError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		respondError(c, response.CodeNotFound, "staff member not found", nil)
	case errors.Is(err, service.ErrStaffExists):
		respondError(c, response.CodeBadRequest, "email is already on the team", nil)
	case errors.Is(err, service.ErrStaffSelfDelete):
		respondError(c, response.CodeBadRequest, "cannot remove your own account", nil)
	case errors.Is(err, service.ErrRoleInvalid):
		respondError(c, response.CodeBadRequest, "role is invalid", nil)
	case errors.Is(err, service.ErrEmailInvalid):
		respondError(c, response.CodeBadRequest, "email is invalid", nil)
	case errors.Is(err, service.ErrPasswordTooWeak):
		respondError(c, response.CodeBadRequest, "password does not meet the policy", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListTeam returns the store's staff members
func (h *Handler) ListTeam(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	members, err := h.StaffService.List(tenantID)
	if err != nil {
		respondError(c, response.CodeInternal, "team could not be loaded", err)
		return
	}
	response.Success(c, members)
}

// CreateStaffRequest adds a staff member
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateStaff adds a staff member and grants their role
func (h *Handler) CreateStaff(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	member, err := h.StaffService.Create(service.CreateStaffInput{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondStaffError(c, err, "staff member could not be created")
		return
	}

	if err := h.AuthzService.AssignStaffRole(member.ID, member.Role); err != nil {
		requestLog(c).Errorw("staff_role_assign_failed", "staff_id", member.ID, "role", member.Role, "error", err)
	}
	response.Success(c, member)
}

// UpdateStaffRequest edits a staff member
type UpdateStaffRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateStaff edits a staff member, re-granting their role when it changes
func (h *Handler) UpdateStaff(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "staff id is invalid", nil)
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	member, err := h.StaffService.Update(tenantID, uint(staffID), service.UpdateStaffInput{
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondStaffError(c, err, "staff member could not be updated")
		return
	}

	if err := h.AuthzService.AssignStaffRole(member.ID, member.Role); err != nil {
		requestLog(c).Errorw("staff_role_assign_failed", "staff_id", member.ID, "role", member.Role, "error", err)
	}
	response.Success(c, member)
}

// DeleteStaff removes a staff member and revokes their grants
func (h *Handler) DeleteStaff(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}
	actorID, ok := getStaffID(c)
	if !ok {
		return
	}

	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "staff id is invalid", nil)
		return
	}

	if err := h.StaffService.Delete(tenantID, uint(staffID), actorID); err != nil {
		respondStaffError(c, err, "staff member could not be removed")
		return
	}

	if err := h.AuthzService.RemoveStaff(uint(staffID)); err != nil {
		requestLog(c).Errorw("staff_role_revoke_failed", "staff_id", staffID, "error", err)
	}
	response.SuccessWithMsg(c, "staff member removed", nil)
}
