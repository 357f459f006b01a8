package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vzdrzevanje/internal/auth"
)

// public endpoints that never require a token
func isPublicPath(path string) bool {
	switch path {
	case "/api/health", "/api/auth/pair":
		return true
	}
	if strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/uploads") {
		return true
	}
	return false
}

// AuthMiddleware validates device pairing tokens when auth is enabled.
func AuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		device, err := tm.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("device", device)
		c.Next()
	}
}
