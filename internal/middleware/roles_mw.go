package middleware

import (
	"net/http"

	"starter_backend/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRoles creates a middleware that allows only users whose role name
// matches one of the given roles. Matching is flat name equality; there is
// no role hierarchy, so admin routes must name "admin" explicitly.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User not found in context, ensure auth middleware runs first"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if user.RoleName == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// AdminOnly checks if the user is an admin
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}
