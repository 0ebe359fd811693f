package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Settings holds application-level configuration loaded from the environment.
// It is constructed once at startup and passed by injection; there is no
// ambient global lookup.
type Settings struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	CookieSameSite  http.SameSite
	ServerPort      string
	StaticDir       string
}

// LoadSettings loads application settings from environment variables
func LoadSettings() (*Settings, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY not set in environment")
	}

	accessMinutes := int64(30)
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
		}
		accessMinutes = parsed
	}

	refreshDays := int64(7)
	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRE_DAYS: %w", err)
		}
		refreshDays = parsed
	}

	cookieSecure := os.Getenv("COOKIE_SECURE") == "true"

	sameSite := http.SameSiteLaxMode
	switch os.Getenv("COOKIE_SAMESITE") {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	return &Settings{
		SecretKey:       secret,
		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshDays) * 24 * time.Hour,
		CookieSecure:    cookieSecure,
		CookieSameSite:  sameSite,
		ServerPort:      serverPort,
		StaticDir:       staticDir,
	}, nil
}
