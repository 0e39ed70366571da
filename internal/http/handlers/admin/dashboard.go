package admin

import (
	"github.com/nexpetcare/nexpetcare/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns booking/customer/revenue stats for a range
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	tenantID, ok := getStaffTenantID(c)
	if !ok {
		return
	}

	overview, err := h.DashboardService.Overview(c.Request.Context(), tenantID, c.DefaultQuery("range", "7d"))
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard could not be loaded", err)
		return
	}
	response.Success(c, overview)
}
