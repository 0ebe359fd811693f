package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens. A refresh token
// must never be accepted where an access token is required, and vice versa.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("unexpected token type")
	ErrInvalidToken   = errors.New("invalid token")
)

// JWTClaims custom claims for JWT
type JWTClaims struct {
	UserID    int       `json:"user_id"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWTUtil provides JWT generation and validation for the access/refresh pair
type JWTUtil struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(secretKey string, accessTTL, refreshTTL time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (ju *JWTUtil) ttl(tokenType TokenType) time.Duration {
	if tokenType == TokenTypeRefresh {
		return ju.refreshTTL
	}
	return ju.accessTTL
}

// GenerateToken generates a signed token of the given type for the user
func (ju *JWTUtil) GenerateToken(userID int, tokenType TokenType) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ju.ttl(tokenType))),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.Itoa(userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// GenerateTokenPair issues a fresh access and refresh token for the user
func (ju *JWTUtil) GenerateTokenPair(userID int) (accessToken, refreshToken string, err error) {
	accessToken, err = ju.GenerateToken(userID, TokenTypeAccess)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = ju.GenerateToken(userID, TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ValidateToken validates signature and expiry, then checks that the token
// carries the expected type
func (ju *JWTUtil) ValidateToken(tokenString string, expectedType TokenType) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, expectedType)
	}

	return claims, nil
}
