package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Drona-Balasara/ALUMNET/config"
)

func abortError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
	c.Abort()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func parseToken(tokenStr string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.App.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", fmt.Errorf("invalid token subject")
	}
	r, _ := claims["role"].(string)
	return sub, r, nil
}

// Auth verifies the Authorization: Bearer <token> header, validates the JWT,
// and stores "userID" (hex string) and "role" in the Gin context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "NO_TOKEN", "authorization header format must be Bearer {token}")
			return
		}

		userID, role, err := parseToken(tokenStr)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// OptionalAuth populates the principal when a valid token is present but
// never rejects the request. Listing endpoints use it to add caller-specific
// flags.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if userID, role, err := parseToken(tokenStr); err == nil {
				c.Set("userID", userID)
				c.Set("role", role)
			}
		}
		c.Next()
	}
}

// RequireRole ensures the authenticated user has the given role.
// Example: router.POST(..., middleware.Auth(), middleware.RequireRole("alumni"), handler)
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rIf, exists := c.Get("role")
		if !exists {
			abortError(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "role not present")
			return
		}
		role, ok := rIf.(string)
		if !ok || role != required {
			abortError(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "insufficient permissions")
			return
		}
		c.Next()
	}
}
