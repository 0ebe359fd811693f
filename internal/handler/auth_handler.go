package handler

import (
	"errors"
	"net/http"

	"starter_backend/internal/middleware"
	"starter_backend/internal/model"
	"starter_backend/internal/service"
	"starter_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	cookies *utils.CookieManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, cookies *utils.CookieManager) *AuthHandler {
	return &AuthHandler{service: s, cookies: cookies}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.cookies.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Login successful"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.ClearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token not found"})
		return
	}
	c.JSON(http.StatusOK, user.Info())
}

func (h *AuthHandler) AllUsers(c *gin.Context) {
	var filters model.UserFilters
	if role := c.Query("role"); role != "" {
		filters.RoleName = &role
	}

	users, err := h.service.AllUsers(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	infos := make([]model.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].Info())
	}
	c.JSON(http.StatusOK, infos)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, ok := utils.RefreshTokenFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token not found"})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidToken.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh tokens"})
		return
	}

	h.cookies.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "Tokens refreshed successfully"})
}

func (h *AuthHandler) AddRoles(c *gin.Context) {
	var req model.AddRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, err := h.service.AddRole(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrRoleAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role added successfully"})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register/", h.Register)
		authGroup.POST("/login/", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me/", authMW, h.Me)
		authGroup.GET("/all_users/", authMW, adminMW, h.AllUsers)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/addroles", authMW, adminMW, h.AddRoles)
	}
}
