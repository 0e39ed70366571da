package admin

import (
	"errors"
	"strconv"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// ServiceRequest create/update payload for a catalog service
type ServiceRequest struct {
	Name            string       `json:"name" binding:"required"`
	Description     string       `json:"description"`
	Price           models.Paise `json:"price" binding:"required"`
	DurationMinutes int          `json:"duration_minutes"`
	IsActive        *bool        `json:"is_active"`
	Announce        bool         `json:"announce"`
}

func (r ServiceRequest) toInput() service.ServiceInput {
	return service.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
}

// ListServices returns the store's catalog including inactive entries
func (h *Handler) ListServices(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	services, total, err := h.CatalogService.List(repository.ServiceListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "services could not be loaded", err)
		return
	}

	response.SuccessWithPage(c, services, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateService adds a catalog entry, optionally announcing it to customers
func (h *Handler) CreateService(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	svc, err := h.CatalogService.Create(tenantID, req.toInput(), req.Announce)
	if err != nil {
		respondError(c, response.CodeInternal, "service could not be created", err)
		return
	}
	response.Success(c, svc)
}

// UpdateService edits a catalog entry
func (h *Handler) UpdateService(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "service id is invalid", nil)
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	svc, err := h.CatalogService.Update(tenantID, uint(serviceID), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, response.CodeNotFound, "service not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "service could not be updated", err)
		return
	}
	response.Success(c, svc)
}

// DeleteService removes a catalog entry
func (h *Handler) DeleteService(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "service id is invalid", nil)
		return
	}

	if err := h.CatalogService.Delete(tenantID, uint(serviceID)); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, response.CodeNotFound, "service not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "service could not be deleted", err)
		return
	}
	response.SuccessWithMsg(c, "service deleted", nil)
}
