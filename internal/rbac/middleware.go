package rbac

import (
	"errors"
	"net/http"

	"property-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAnyRole allows the request through if the verified identity holds
// any of the given roles. A request with no identity is 401; a valid
// identity without a matching role is 403 — insufficient roles are an
// authorization failure, not an authentication one.
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := auth.FromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := id.RequireRoles(allowed...); err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
