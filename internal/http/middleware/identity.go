package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memory_mapping/internal/http/dto"
	"memory_mapping/internal/http/resp"
)

// OwnerHeader carries the caller identity established by the authenticating
// proxy in front of the service.
const OwnerHeader = "X-Owner"

const ownerKey = "owner"

// RequireOwner rejects requests without a caller identity.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(OwnerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: resp.CodeUnauthorized, Message: OwnerHeader + " header required"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}
