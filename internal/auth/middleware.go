package auth

import (
	"net/http"
	"strings"

	"mingle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the verified user ID is
// stored by the middleware below.
const ContextUserKey = "userID"

// Middleware creates a gin middleware that requires a valid Bearer token and
// sets the verified user ID on the request context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// OptionalMiddleware inspects for a token and sets the userID if present and
// valid, but does not fail if the token is missing or invalid.
func OptionalMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, secret); ok {
			c.Set(ContextUserKey, userID)
		}
		c.Next()
	}
}

// UserID returns the verified user ID set by Middleware, or "" if absent.
func UserID(c *gin.Context) string {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return ""
	}
	id, _ := v.(string)
	return id
}

func bearerUserID(c *gin.Context, secret string) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	userID, err := jwt.ParseToken(parts[1], secret)
	if err != nil {
		return "", false
	}
	return userID, true
}
