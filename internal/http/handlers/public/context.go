package public

import (
	handlershared "github.com/nexpetcare/nexpetcare/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id")
}

func getCustomerTenantID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "tenant_id")
}
