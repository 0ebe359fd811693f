package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCookieManager() *CookieManager {
	return NewCookieManager(false, http.SameSiteLaxMode, 30*time.Minute, 7*24*time.Hour)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestCookieManager_SetTokenCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cm := newTestCookieManager()
	cm.SetTokenCookies(c, "access.token.value", "refresh.token.value")

	cookies := w.Result().Cookies()
	access := findCookie(cookies, AccessTokenCookieName)
	refresh := findCookie(cookies, RefreshTokenCookieName)

	require.NotNil(t, access)
	require.NotNil(t, refresh)

	assert.Equal(t, "access.token.value", access.Value)
	assert.Equal(t, "refresh.token.value", refresh.Value)
	for _, cookie := range []*http.Cookie{access, refresh} {
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Positive(t, cookie.MaxAge)
	}
	// Refresh cookie outlives the access cookie
	assert.Greater(t, refresh.MaxAge, access.MaxAge)
}

func TestCookieManager_ClearTokenCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cm := newTestCookieManager()
	cm.ClearTokenCookies(c)

	cookies := w.Result().Cookies()
	access := findCookie(cookies, AccessTokenCookieName)
	refresh := findCookie(cookies, RefreshTokenCookieName)

	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Negative(t, access.MaxAge)
	assert.Negative(t, refresh.MaxAge)
	assert.Empty(t, access.Value)
	assert.Empty(t, refresh.Value)
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: "the-access-token"})

	token, ok := AccessTokenFromRequest(c)
	assert.True(t, ok)
	assert.Equal(t, "the-access-token", token)

	// Refresh cookie is absent; absence is reported, not an error
	_, ok = RefreshTokenFromRequest(c)
	assert.False(t, ok)
}
