package admin

import (
	"errors"
	"strconv"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCustomers returns the store's customers with their aggregates
func (h *Handler) ListCustomers(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
		Keyword:  c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "customers could not be loaded", err)
		return
	}

	response.SuccessWithPage(c, customers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetCustomer returns one customer with pets and recent bookings
func (h *Handler) GetCustomer(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "customer id is invalid", nil)
		return
	}

	detail, err := h.CustomerService.Get(tenantID, uint(customerID))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "customer could not be loaded", err)
		return
	}
	response.Success(c, detail)
}
