package middleware

import (
	"net/http"

	"starter_backend/internal/model"
	"starter_backend/internal/repository"
	"starter_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const AuthUserKey = "authUser"

// AuthMiddleware authenticates a request from its access-token cookie and
// loads the matching user from the store. All failure modes collapse to a
// single 400 so the response does not reveal which check failed.
func AuthMiddleware(jwtUtil *utils.JWTUtil, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := utils.AccessTokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Token not found"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString, utils.TokenTypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}
		if user == nil {
			// Valid token for a deleted account
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}
