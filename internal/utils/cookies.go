package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "user_access_token"
	RefreshTokenCookieName = "user_refresh_token"
)

// CookieManager writes and clears the session cookie pair. Both cookies are
// HTTP-only and scoped to the whole site; Secure and SameSite come from
// configuration.
type CookieManager struct {
	secure        bool
	sameSite      http.SameSite
	accessMaxAge  int
	refreshMaxAge int
}

// NewCookieManager creates a new CookieManager
func NewCookieManager(secure bool, sameSite http.SameSite, accessTTL, refreshTTL time.Duration) *CookieManager {
	return &CookieManager{
		secure:        secure,
		sameSite:      sameSite,
		accessMaxAge:  int(accessTTL.Seconds()),
		refreshMaxAge: int(refreshTTL.Seconds()),
	}
}

// SetTokenCookies writes both session cookies on the response
func (cm *CookieManager) SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(cm.sameSite)
	c.SetCookie(AccessTokenCookieName, accessToken, cm.accessMaxAge, "/", "", cm.secure, true)
	c.SetCookie(RefreshTokenCookieName, refreshToken, cm.refreshMaxAge, "/", "", cm.secure, true)
}

// ClearTokenCookies deletes both session cookies (logout). This removes
// client-side state only; the tokens themselves stay valid until expiry.
func (cm *CookieManager) ClearTokenCookies(c *gin.Context) {
	c.SetSameSite(cm.sameSite)
	c.SetCookie(AccessTokenCookieName, "", -1, "/", "", cm.secure, true)
	c.SetCookie(RefreshTokenCookieName, "", -1, "/", "", cm.secure, true)
}

// AccessTokenFromRequest extracts the raw access token from the request
// cookies. Absence is not an error at this layer.
func AccessTokenFromRequest(c *gin.Context) (string, bool) {
	return cookieValue(c, AccessTokenCookieName)
}

// RefreshTokenFromRequest extracts the raw refresh token from the request cookies
func RefreshTokenFromRequest(c *gin.Context) (string, bool) {
	return cookieValue(c, RefreshTokenCookieName)
}

func cookieValue(c *gin.Context, name string) (string, bool) {
	value, err := c.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
