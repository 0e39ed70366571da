package admin

import (
	handlershared "github.com/nexpetcare/nexpetcare/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getStaffID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "staff_id")
}

func getStaffTenantID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "tenant_id")
}
